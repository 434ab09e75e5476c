package timer

import "errors"

var (
	errInvalidSoundFormat = errors.New(
		"sound file must be in mp3, ogg, flac, or wav format",
	)

	errNoPausedTimer = errors.New(
		"no paused timer found: please start a new session",
	)
)
