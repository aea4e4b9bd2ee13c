package stocktake

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/entity"
	"stocktake/internal/core/id"
)

// Assignment schedules one branch for counting in one month.
// At most one assignment exists per (branch, month).
type Assignment struct {
	ID            id.ID     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	AssignedMonth time.Time `db:"assigned_month" json:"assignedMonth"`
	BranchID      id.ID     `db:"branch_id" json:"branchId"`
	Status        Status    `db:"status" json:"status"`
	AssignedAt    time.Time `db:"assigned_at" json:"assignedAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// NewAssignment creates a not-started assignment.
func NewAssignment(name string, branchID id.ID, month time.Time) *Assignment {
	now := time.Now().UTC()
	return &Assignment{
		ID:            id.New(),
		Name:          strings.TrimSpace(name),
		AssignedMonth: MonthStart(month),
		BranchID:      branchID,
		Status:        DefaultStatus,
		AssignedAt:    now,
		UpdatedAt:     now,
	}
}

// Validate implements entity.Validatable interface.
func (a *Assignment) Validate(ctx context.Context) error {
	if strings.TrimSpace(a.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if err := entity.ValidateLength("name", a.Name, entity.NameMaxLength); err != nil {
		return err
	}
	if id.IsNil(a.BranchID) {
		return apperror.NewValidation("branchId is required").
			WithDetail("field", "branchId")
	}
	if a.AssignedMonth.IsZero() || !a.AssignedMonth.Equal(MonthStart(a.AssignedMonth)) {
		return apperror.NewValidation("assignedMonth must be the first day of a month").
			WithDetail("field", "assignedMonth")
	}
	if _, err := ParseStatus(string(a.Status)); err != nil {
		return err
	}
	return nil
}

// MonthLayout is the wire format of a normalized month.
const MonthLayout = "2006-01-02"

var (
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dayRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// NormalizeMonth parses "YYYY-MM" or "YYYY-MM-DD" into the first day of that month (UTC).
func NormalizeMonth(input string) (time.Time, error) {
	s := strings.TrimSpace(input)

	var (
		t   time.Time
		err error
	)
	switch {
	case monthRe.MatchString(s):
		t, err = time.Parse("2006-01", s)
	case dayRe.MatchString(s):
		t, err = time.Parse(MonthLayout, s)
	default:
		err = errInvalidMonth
	}
	if err != nil {
		return time.Time{}, apperror.NewValidation("month must be YYYY-MM or YYYY-MM-DD").
			WithDetail("field", "assignedMonth").
			WithDetail("value", input)
	}
	return MonthStart(t), nil
}

var errInvalidMonth = errors.New("invalid month")

// MonthStart truncates t to midnight UTC on the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FormatMonth renders a month as YYYY-MM-DD.
func FormatMonth(t time.Time) string {
	return t.Format(MonthLayout)
}

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	BranchID *id.ID
	Month    *time.Time
	Status   *Status
	Limit    int
	Offset   int
}

// AssignmentPatch carries the fields of a partial update; nil means unchanged.
type AssignmentPatch struct {
	Name          *string
	BranchID      *id.ID
	AssignedMonth *time.Time
	Status        *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p AssignmentPatch) IsEmpty() bool {
	return p.Name == nil && p.BranchID == nil && p.AssignedMonth == nil && p.Status == nil
}

// CreateAssignmentInput is the input for creating (or renaming) an assignment.
type CreateAssignmentInput struct {
	Name          string
	BranchID      id.ID
	AssignedMonth time.Time
}
