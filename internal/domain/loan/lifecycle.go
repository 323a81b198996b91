package loan

import "errors"

var (
	ErrNotFound          = errors.New("loan request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStoreUnavailable  = errors.New("record store unavailable")
)

// transitions is the full lifecycle graph. rejected and completed are
// terminal: no edge ever leaves them.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusDisbursed},
	StatusDisbursed: {StatusCompleted},
	StatusRejected:  {},
	StatusCompleted: {},
}

// AllowedNext returns the statuses a request in the given status may move to.
// Unknown statuses have no outgoing edges.
func AllowedNext(current Status) []Status {
	next := transitions[current]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func CanTransition(current, target Status) bool {
	for _, s := range transitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// Transition validates a status change against the lifecycle graph. The
// caller persists the new status; the store refreshes updated_at as part of
// that write, which is what stamps the moment of the change.
func Transition(current, target Status) error {
	if !CanTransition(current, target) {
		return ErrInvalidTransition
	}
	return nil
}
