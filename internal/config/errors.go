package config

import "github.com/tomate-app/tomate/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errShortBreakTooLong = &apperr.Error{
		Message: "short break duration (%v) must be less than work duration (%v)",
	}

	errLongBreakTooShort = &apperr.Error{
		Message: "long break duration (%v) must be greater than short break duration (%v)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errInvalidLongBreakInterval = &apperr.Error{
		Message: "long break interval must be between %d and %d sessions",
	}

	errInvalidGoal = &apperr.Error{
		Message: "%s goal must not be negative, got %d",
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the end date must not be earlier than the start date",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "please provide a valid time period",
	}

	errInvalidStartDate = &apperr.Error{
		Message: "please provide a valid start date",
	}
)
