package trophy

// The achievement catalog is static configuration: evaluation logic lives
// in trophy.go and treats this list as data.

type checkKind int

const (
	checkTotalSessions checkKind = iota
	checkTotalHours
	checkStreakDays
	checkBeforeHour
	checkAfterHour
)

// Achievement describes a single unlockable badge.
type Achievement struct {
	ID          string
	Name        string
	Description string

	kind      checkKind
	threshold int
}

var catalog = []Achievement{
	{
		ID:          "first-session",
		Name:        "First Harvest",
		Description: "Complete your first focus session",
		kind:        checkTotalSessions,
		threshold:   1,
	},
	{
		ID:          "sessions-25",
		Name:        "Quarter Century",
		Description: "Complete 25 focus sessions",
		kind:        checkTotalSessions,
		threshold:   25,
	},
	{
		ID:          "sessions-100",
		Name:        "Centurion",
		Description: "Complete 100 focus sessions",
		kind:        checkTotalSessions,
		threshold:   100,
	},
	{
		ID:          "sessions-500",
		Name:        "Tomato Farmer",
		Description: "Complete 500 focus sessions",
		kind:        checkTotalSessions,
		threshold:   500,
	},
	{
		ID:          "hours-10",
		Name:        "Deep Diver",
		Description: "Accumulate 10 hours of focused work",
		kind:        checkTotalHours,
		threshold:   10,
	},
	{
		ID:          "hours-100",
		Name:        "Master of Time",
		Description: "Accumulate 100 hours of focused work",
		kind:        checkTotalHours,
		threshold:   100,
	},
	{
		ID:          "streak-3",
		Name:        "Warming Up",
		Description: "Focus on 3 days in a row",
		kind:        checkStreakDays,
		threshold:   3,
	},
	{
		ID:          "streak-7",
		Name:        "Unbroken Week",
		Description: "Focus on 7 days in a row",
		kind:        checkStreakDays,
		threshold:   7,
	},
	{
		ID:          "streak-30",
		Name:        "Iron Habit",
		Description: "Focus on 30 days in a row",
		kind:        checkStreakDays,
		threshold:   30,
	},
	{
		ID:          "early-bird",
		Name:        "Early Bird",
		Description: "Complete a focus session before 7 AM",
		kind:        checkBeforeHour,
		threshold:   7,
	},
	{
		ID:          "night-owl",
		Name:        "Night Owl",
		Description: "Complete a focus session after 10 PM",
		kind:        checkAfterHour,
		threshold:   22,
	},
}

// Catalog returns the full achievement catalog.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)

	return out
}
