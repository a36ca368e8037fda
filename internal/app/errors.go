package app

import "errors"

// Benign applier conditions. These are expected under at-least-once
// delivery and never propagate past the orchestrator; they only differ in
// how they get logged.
var (
	ErrUnknownGame       = errors.New("unknown game")
	ErrPlayerNotPresent  = errors.New("player not present")
	ErrDuplicateDelivery = errors.New("duplicate delivery")
)

// IsBenign reports whether err is a stale-state condition that should be
// absorbed and logged rather than treated as a failure.
func IsBenign(err error) bool {
	return errors.Is(err, ErrUnknownGame) ||
		errors.Is(err, ErrPlayerNotPresent) ||
		errors.Is(err, ErrDuplicateDelivery)
}
