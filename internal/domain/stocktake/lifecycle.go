package stocktake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/tx"
	"stocktake/internal/domain"
	"stocktake/pkg/logger"
)

// AssignmentService manages branch assignments and their status.
// It is the only writer of the done status, reached through markDone.
type AssignmentService struct {
	repo     AssignmentRepository
	branches BranchReader
	txm      tx.Manager
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(repo AssignmentRepository, branches BranchReader, txm tx.Manager) *AssignmentService {
	return &AssignmentService{
		repo:     repo,
		branches: branches,
		txm:      txm,
	}
}

// Create schedules a branch for counting. An existing assignment for the same
// (branch, month) is renamed and keeps its status and counts.
func (s *AssignmentService) Create(ctx context.Context, in CreateAssignmentInput) (*Assignment, error) {
	a := NewAssignment(in.Name, in.BranchID, in.AssignedMonth)
	if err := a.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.checkBranch(ctx, a.BranchID); err != nil {
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("upsert assignment: %w", err)
	}

	logger.Info(ctx, "branch assignment saved",
		"assignment_id", saved.ID,
		"branch_id", saved.BranchID,
		"month", FormatMonth(saved.AssignedMonth))

	return saved, nil
}

// Get returns one assignment.
func (s *AssignmentService) Get(ctx context.Context, assignmentID id.ID) (*Assignment, error) {
	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, notFoundAs(err, assignmentID)
	}
	return a, nil
}

// List returns assignments, newest first.
func (s *AssignmentService) List(ctx context.Context, filter AssignmentFilter) (domain.ListResult[*Assignment], error) {
	clampPage(&filter.Limit, &filter.Offset)
	return s.repo.List(ctx, filter)
}

// Update applies a partial edit. Status edits are limited to not started and
// in progress, and a done assignment keeps its status.
func (s *AssignmentService) Update(ctx context.Context, assignmentID id.ID, patch AssignmentPatch) (*Assignment, error) {
	if patch.IsEmpty() {
		return nil, apperror.NewValidation("No fields to update")
	}

	var updated *Assignment
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetForUpdate(ctx, assignmentID)
		if err != nil {
			return notFoundAs(err, assignmentID)
		}

		if patch.Status != nil {
			if err := checkStatusEdit(a.Status, *patch.Status); err != nil {
				return err
			}
			a.Status = *patch.Status
		}
		if patch.Name != nil {
			a.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.BranchID != nil && *patch.BranchID != a.BranchID {
			if err := s.checkBranch(ctx, *patch.BranchID); err != nil {
				return err
			}
			a.BranchID = *patch.BranchID
		}
		if patch.AssignedMonth != nil {
			a.AssignedMonth = MonthStart(*patch.AssignedMonth)
		}

		if err := a.Validate(ctx); err != nil {
			return err
		}

		a.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, a); err != nil {
			if apperror.HasCode(err, apperror.CodeDuplicate) {
				return apperror.NewDuplicate("branch assignment", "branch and month", FormatMonth(a.AssignedMonth)).
					WithCause(err)
			}
			return fmt.Errorf("update assignment: %w", err)
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an assignment. Assignments with recorded counts cannot be deleted;
// the summary goes with the assignment.
func (s *AssignmentService) Delete(ctx context.Context, assignmentID id.ID) error {
	if err := s.repo.Delete(ctx, assignmentID); err != nil {
		if apperror.HasCode(err, apperror.CodeReferenceInUse) {
			return apperror.NewReferenceInUse("branch assignment", assignmentID.String()).
				WithDetail("reason", "stock counts exist").
				WithCause(err)
		}
		return notFoundAs(err, assignmentID)
	}
	logger.Info(ctx, "branch assignment deleted", "assignment_id", assignmentID)
	return nil
}

// markDone moves the assignment to done from any state. Only finalize calls it.
func (s *AssignmentService) markDone(ctx context.Context, a *Assignment) error {
	switch a.Status {
	case StatusNotStarted, StatusInProgress, StatusDone:
	default:
		return apperror.NewInternal(fmt.Errorf("unknown status %q", a.Status))
	}
	if err := s.repo.SetStatus(ctx, a.ID, StatusDone); err != nil {
		return fmt.Errorf("mark assignment done: %w", err)
	}
	a.Status = StatusDone
	return nil
}

func (s *AssignmentService) checkBranch(ctx context.Context, branchID id.ID) error {
	if s.branches == nil {
		return nil
	}
	ok, err := s.branches.Exists(ctx, branchID)
	if err != nil {
		return fmt.Errorf("check branch: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("branch", branchID.String())
	}
	return nil
}

func notFoundAs(err error, assignmentID id.ID) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound("branch assignment", assignmentID.String())
	}
	return err
}
