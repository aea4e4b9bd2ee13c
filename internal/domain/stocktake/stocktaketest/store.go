// Package stocktaketest provides an in-memory store for stocktake tests.
package stocktaketest

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/tx"
	"stocktake/internal/core/types"
	"stocktake/internal/domain"
	"stocktake/internal/domain/stocktake"
)

var _ tx.SerializableManager = (*Store)(nil)

type productRow struct {
	name       string
	categoryID id.ID
	price      *types.Money
}

type countKey struct {
	assignmentID id.ID
	productID    id.ID
}

type state struct {
	categories  map[id.ID]string
	branches    map[id.ID]string
	products    map[id.ID]productRow
	assignments map[id.ID]stocktake.Assignment
	counts      map[countKey]stocktake.StockCount
	summaries   map[id.ID]stocktake.Summary
	events      []domain.Event
}

func (s state) clone() state {
	return state{
		categories:  maps.Clone(s.categories),
		branches:    maps.Clone(s.branches),
		products:    maps.Clone(s.products),
		assignments: maps.Clone(s.assignments),
		counts:      maps.Clone(s.counts),
		summaries:   maps.Clone(s.summaries),
		events:      slices.Clone(s.events),
	}
}

// Store is an in-memory implementation of the stocktake repositories and a
// transaction manager. Transactions are serialized and rolled back by
// restoring a snapshot taken at begin.
type Store struct {
	txMu sync.Mutex

	mu        sync.Mutex
	st        state
	failures  map[string]error
	conflicts int
	attempts  int
}

type txKey struct{}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		st: state{
			categories:  map[id.ID]string{},
			branches:    map[id.ID]string{},
			products:    map[id.ID]productRow{},
			assignments: map[id.ID]stocktake.Assignment{},
			counts:      map[countKey]stocktake.StockCount{},
			summaries:   map[id.ID]stocktake.Summary{},
		},
		failures: map[string]error{},
	}
}

// FailNext makes the next call of op return err.
// Ops are named "<repo>.<Method>", e.g. "assignments.SetStatus".
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// FailSerializable makes the next n serializable attempts abort with a
// serialization conflict after fn has run, discarding their writes the way
// PostgreSQL does at commit.
func (s *Store) FailSerializable(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = n
}

// SerializableAttempts returns how many serializable transactions were begun.
func (s *Store) SerializableAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *Store) takeConflict() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflicts == 0 {
		return nil
	}
	s.conflicts--
	return apperror.NewTransient(tx.ErrSerializationConflict)
}

func (s *Store) injected(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// --- tx.SerializableManager ---

// RunInTransaction implements tx.Manager.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	saved := s.st.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunSerializable implements tx.SerializableManager. Conflicts injected with
// FailSerializable are rerun under the default retry policy.
func (s *Store) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	return tx.RetryOnConflict(ctx, s.retryPolicy(), func(ctx context.Context) error {
		return s.RunInTransaction(ctx, func(ctx context.Context) error {
			s.mu.Lock()
			s.attempts++
			s.mu.Unlock()

			if err := fn(ctx); err != nil {
				return err
			}
			return s.takeConflict()
		})
	})
}

func (s *Store) retryPolicy() tx.RetryPolicy {
	p := tx.DefaultRetryPolicy(func(err error) bool {
		return errors.Is(err, tx.ErrSerializationConflict)
	})
	p.MinBackoff = time.Millisecond
	p.MaxBackoff = time.Millisecond
	return p
}

// --- seeding ---

// AddCategory creates a category and returns its id.
func (s *Store) AddCategory(name string) id.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	for cid, n := range s.st.categories {
		if n == name {
			return cid
		}
	}
	cid := id.New()
	s.st.categories[cid] = name
	return cid
}

// AddBranch creates a branch and returns its id.
func (s *Store) AddBranch(name string) id.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid := id.New()
	s.st.branches[bid] = name
	return bid
}

// AddProduct creates a product in the named category. An empty price leaves it unset.
func (s *Store) AddProduct(name, category, price string) id.ID {
	cid := s.AddCategory(category)

	s.mu.Lock()
	defer s.mu.Unlock()
	row := productRow{name: name, categoryID: cid}
	if price != "" {
		p := types.MustMoney(price)
		row.price = &p
	}
	pid := id.New()
	s.st.products[pid] = row
	return pid
}

// SetPrice changes a product price.
func (s *Store) SetPrice(productID id.ID, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.st.products[productID]
	p := types.MustMoney(price)
	row.price = &p
	s.st.products[productID] = row
}

// --- inspection ---

// Count returns the stored count of a pair.
func (s *Store) Count(assignmentID, productID id.ID) (stocktake.StockCount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.counts[countKey{assignmentID, productID}]
	return c, ok
}

// CountRows returns the number of stored counts.
func (s *Store) CountRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.counts)
}

// Assignment returns a stored assignment.
func (s *Store) Assignment(assignmentID id.ID) (stocktake.Assignment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.st.assignments[assignmentID]
	return a, ok
}

// StoredSummary returns the stored summary of an assignment.
func (s *Store) StoredSummary(assignmentID id.ID) (stocktake.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.st.summaries[assignmentID]
	return sum, ok
}

// Events returns the published events.
func (s *Store) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.events)
}

// --- repository views ---

// Assignments returns the stocktake.AssignmentRepository view.
func (s *Store) Assignments() stocktake.AssignmentRepository { return assignmentRepo{s} }

// Counts returns the stocktake.CountRepository view.
func (s *Store) Counts() stocktake.CountRepository { return countRepo{s} }

// Summaries returns the stocktake.SummaryRepository view.
func (s *Store) Summaries() stocktake.SummaryRepository { return summaryRepo{s} }

// Prices returns the stocktake.PriceReader view.
func (s *Store) Prices() stocktake.PriceReader { return priceReader{s} }

// Branches returns the stocktake.BranchReader view.
func (s *Store) Branches() stocktake.BranchReader { return branchReader{s} }

// Publisher returns a domain.EventPublisher that records events with the transaction.
func (s *Store) Publisher() domain.EventPublisher { return publisher{s} }

type assignmentRepo struct{ s *Store }

func (r assignmentRepo) Upsert(ctx context.Context, a *stocktake.Assignment) (*stocktake.Assignment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("assignments.Upsert"); err != nil {
		return nil, err
	}
	if _, ok := s.st.branches[a.BranchID]; !ok {
		return nil, apperror.NewNotFound("referenced record", a.BranchID.String())
	}
	for aid, existing := range s.st.assignments {
		if existing.BranchID == a.BranchID && existing.AssignedMonth.Equal(a.AssignedMonth) {
			existing.Name = a.Name
			existing.UpdatedAt = time.Now().UTC()
			s.st.assignments[aid] = existing
			out := existing
			return &out, nil
		}
	}
	s.st.assignments[a.ID] = *a
	out := *a
	return &out, nil
}

func (r assignmentRepo) GetByID(ctx context.Context, assignmentID id.ID) (*stocktake.Assignment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("assignments.GetByID"); err != nil {
		return nil, err
	}
	a, ok := s.st.assignments[assignmentID]
	if !ok {
		return nil, apperror.NewNotFound("branch_assignments", assignmentID.String())
	}
	return &a, nil
}

func (r assignmentRepo) GetForUpdate(ctx context.Context, assignmentID id.ID) (*stocktake.Assignment, error) {
	if err := r.s.takeFailure("assignments.GetForUpdate"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, assignmentID)
}

func (r assignmentRepo) Update(ctx context.Context, a *stocktake.Assignment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("assignments.Update"); err != nil {
		return err
	}
	if _, ok := s.st.assignments[a.ID]; !ok {
		return apperror.NewNotFound("branch_assignments", a.ID.String())
	}
	if _, ok := s.st.branches[a.BranchID]; !ok {
		return apperror.NewNotFound("referenced record", a.BranchID.String())
	}
	for aid, other := range s.st.assignments {
		if aid != a.ID && other.BranchID == a.BranchID && other.AssignedMonth.Equal(a.AssignedMonth) {
			return apperror.NewDuplicate("branch_assignments", "branch_assignments_branch_month_key", nil)
		}
	}
	s.st.assignments[a.ID] = *a
	return nil
}

func (r assignmentRepo) SetStatus(ctx context.Context, assignmentID id.ID, status stocktake.Status) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("assignments.SetStatus"); err != nil {
		return err
	}
	a, ok := s.st.assignments[assignmentID]
	if !ok {
		return apperror.NewNotFound("branch_assignments", assignmentID.String())
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	s.st.assignments[assignmentID] = a
	return nil
}

func (r assignmentRepo) Delete(ctx context.Context, assignmentID id.ID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("assignments.Delete"); err != nil {
		return err
	}
	if _, ok := s.st.assignments[assignmentID]; !ok {
		return apperror.NewNotFound("branch_assignments", assignmentID.String())
	}
	for k := range s.st.counts {
		if k.assignmentID == assignmentID {
			return apperror.NewReferenceInUse("branch_assignments", nil)
		}
	}
	delete(s.st.assignments, assignmentID)
	delete(s.st.summaries, assignmentID)
	return nil
}

func (r assignmentRepo) List(ctx context.Context, f stocktake.AssignmentFilter) (domain.ListResult[*stocktake.Assignment], error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []*stocktake.Assignment
	for _, a := range s.st.assignments {
		if f.BranchID != nil && a.BranchID != *f.BranchID {
			continue
		}
		if f.Month != nil && !a.AssignedMonth.Equal(*f.Month) {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		a := a
		items = append(items, &a)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID.String() > items[j].ID.String()
	})
	return page(items, f.Limit, f.Offset), nil
}

func (r assignmentRepo) Exists(ctx context.Context, assignmentID id.ID) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("assignments.Exists"); err != nil {
		return false, err
	}
	_, ok := s.st.assignments[assignmentID]
	return ok, nil
}

type countRepo struct{ s *Store }

func (r countRepo) Upsert(ctx context.Context, c *stocktake.StockCount) (*stocktake.StockCount, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("counts.Upsert"); err != nil {
		return nil, err
	}
	if _, ok := s.st.assignments[c.AssignmentID]; !ok {
		return nil, apperror.NewNotFound("referenced record", c.AssignmentID.String())
	}
	if _, ok := s.st.products[c.ProductID]; !ok {
		return nil, apperror.NewNotFound("referenced record", c.ProductID.String())
	}

	key := countKey{c.AssignmentID, c.ProductID}
	row := *c
	if existing, ok := s.st.counts[key]; ok {
		row.ID = existing.ID
	}
	s.st.counts[key] = row
	return &row, nil
}

func (r countRepo) ListValued(ctx context.Context, assignmentID id.ID) ([]stocktake.ValuedLine, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("counts.ListValued"); err != nil {
		return nil, err
	}

	var lines []stocktake.ValuedLine
	for k, c := range s.st.counts {
		if k.assignmentID != assignmentID {
			continue
		}
		p := s.st.products[k.productID]
		lines = append(lines, stocktake.ValuedLine{
			CategoryName: s.st.categories[p.categoryID],
			Value:        c.Value,
		})
	}
	return lines, nil
}

func (r countRepo) List(ctx context.Context, f stocktake.CountFilter) (domain.ListResult[*stocktake.CountView], error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []*stocktake.CountView
	for k, c := range s.st.counts {
		if f.AssignmentID != nil && k.assignmentID != *f.AssignmentID {
			continue
		}
		if f.ProductID != nil && k.productID != *f.ProductID {
			continue
		}
		p := s.st.products[k.productID]
		items = append(items, &stocktake.CountView{
			StockCount:   c,
			ProductName:  p.name,
			CategoryName: s.st.categories[p.categoryID],
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CategoryName != items[j].CategoryName {
			return items[i].CategoryName < items[j].CategoryName
		}
		return strings.Compare(items[i].ProductName, items[j].ProductName) < 0
	})
	return page(items, f.Limit, f.Offset), nil
}

type summaryRepo struct{ s *Store }

func (r summaryRepo) Upsert(ctx context.Context, sum *stocktake.Summary) (*stocktake.Summary, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("summaries.Upsert"); err != nil {
		return nil, err
	}
	if _, ok := s.st.assignments[sum.AssignmentID]; !ok {
		return nil, apperror.NewNotFound("referenced record", sum.AssignmentID.String())
	}

	row := *sum
	row.TotalsByCategory = slices.Clone(sum.TotalsByCategory)
	if existing, ok := s.st.summaries[sum.AssignmentID]; ok {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	}
	s.st.summaries[sum.AssignmentID] = row
	out := row
	return &out, nil
}

func (r summaryRepo) GetByAssignment(ctx context.Context, assignmentID id.ID) (*stocktake.Summary, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.st.summaries[assignmentID]
	if !ok {
		return nil, apperror.NewNotFound("stocktake_summaries", assignmentID.String())
	}
	return &sum, nil
}

func (r summaryRepo) List(ctx context.Context, f stocktake.SummaryFilter) (domain.ListResult[*stocktake.SummaryView], error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []*stocktake.SummaryView
	for aid, sum := range s.st.summaries {
		a := s.st.assignments[aid]
		if f.BranchID != nil && a.BranchID != *f.BranchID {
			continue
		}
		if f.Month != nil && !a.AssignedMonth.Equal(*f.Month) {
			continue
		}
		items = append(items, &stocktake.SummaryView{
			Summary:        sum,
			AssignmentName: a.Name,
			AssignedMonth:  a.AssignedMonth,
			BranchID:       a.BranchID,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID.String() > items[j].ID.String()
	})
	return page(items, f.Limit, f.Offset), nil
}

type priceReader struct{ s *Store }

func (r priceReader) ProductPrice(ctx context.Context, productID id.ID) (*types.Money, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("prices.ProductPrice"); err != nil {
		return nil, err
	}
	p, ok := s.st.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("products", productID.String())
	}
	return p.price, nil
}

type branchReader struct{ s *Store }

func (r branchReader) Exists(ctx context.Context, branchID id.ID) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.st.branches[branchID]
	return ok, nil
}

type publisher struct{ s *Store }

func (p publisher) Publish(ctx context.Context, event domain.Event) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("events.Publish"); err != nil {
		return err
	}
	s.st.events = append(s.st.events, event)
	return nil
}

func (s *Store) takeFailure(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.injected(op)
}

func page[T any](items []T, limit, offset int) domain.ListResult[T] {
	res := domain.ListResult[T]{
		TotalCount: int64(len(items)),
		Limit:      limit,
		Offset:     offset,
		Items:      []T{},
	}
	if offset >= len(items) {
		return res
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	res.Items = items[offset:end]
	return res
}
