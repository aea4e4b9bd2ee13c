package stocktake

import (
	"strings"

	"stocktake/internal/core/apperror"
)

// Status is the lifecycle state of a branch assignment.
type Status string

const (
	StatusNotStarted Status = "not started"
	StatusInProgress Status = "in progress"
	StatusDone       Status = "done"
)

// DefaultStatus is assigned to newly created assignments.
const DefaultStatus = StatusNotStarted

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusDone}
}

// ParseStatus converts input into a Status, rejecting anything outside the closed set.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.TrimSpace(s)); st {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return st, nil
	default:
		return "", apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", s).
			WithDetail("allowed", Statuses())
	}
}

// IsTerminal reports whether no further edits are allowed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDone:
		return true
	case StatusNotStarted, StatusInProgress:
		return false
	default:
		return false
	}
}

// checkStatusEdit validates an explicit status change requested by a client.
// Done is only reachable through finalize and cannot be left.
func checkStatusEdit(from, to Status) error {
	switch to {
	case StatusNotStarted, StatusInProgress:
		switch from {
		case StatusNotStarted, StatusInProgress:
			return nil
		case StatusDone:
			return apperror.NewBusinessRule(apperror.CodeAssignmentDone,
				"assignment is done, its status can no longer be changed").
				WithDetail("status", string(from))
		default:
			return apperror.NewInternal(nil).WithDetail("status", string(from))
		}
	case StatusDone:
		if from == StatusDone {
			return nil
		}
		return apperror.NewValidation("status done is set by finishing the stocktake").
			WithDetail("field", "status")
	default:
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(to))
	}
}
