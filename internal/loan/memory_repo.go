package loan

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repository used by tests. Update carries
// the same ACTIVE guard as the Postgres implementation.
type MemoryRepo struct {
	mu    sync.Mutex
	loans map[string]Loan
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{loans: make(map[string]Loan)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Loan, error) {
	return r.list(func(Loan) bool { return true }), nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Loan, error) {
	return r.list(func(l Loan) bool { return l.UserID == userID }), nil
}

func (r *MemoryRepo) ListByStatus(ctx context.Context, status string) ([]Loan, error) {
	return r.list(func(l Loan) bool { return l.Status == status }), nil
}

func (r *MemoryRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]Loan, error) {
	return r.list(func(l Loan) bool { return l.Overdue(asOf) }), nil
}

func (r *MemoryRepo) list(keep func(Loan) bool) []Loan {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Loan
	for _, l := range r.loans {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoanDate.After(out[j].LoanDate) })
	return out
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok {
		return Loan{}, ErrNotFound
	}
	return l, nil
}

func (r *MemoryRepo) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, l := range r.loans {
		if l.UserID == userID && l.Status == StatusActive {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepo) Create(ctx context.Context, l *Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	r.loans[l.ID] = *l
	return nil
}

func (r *MemoryRepo) Reopen(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || l.Status != StatusReturned {
		return ErrNotFound
	}
	l.Status = StatusActive
	l.ReturnDate = nil
	l.UpdatedAt = time.Now()
	r.loans[id] = l
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, l *Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.loans[l.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Status != StatusActive {
		return ErrNotActive
	}
	l.UpdatedAt = time.Now()
	r.loans[l.ID] = *l
	return nil
}
