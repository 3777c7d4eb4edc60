package book

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repository used by tests and local tooling.
// All methods take the mutex for their full duration, which gives
// Reserve/Release the same atomicity the conditional SQL updates give
// the Postgres implementation.
type MemoryRepo struct {
	mu    sync.Mutex
	books map[string]Book
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[string]Book)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	return r.list(func(Book) bool { return true }), nil
}

func (r *MemoryRepo) ListAvailable(ctx context.Context) ([]Book, error) {
	return r.list(func(b Book) bool { return b.AvailableCopies > 0 }), nil
}

func (r *MemoryRepo) list(keep func(Book) bool) []Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Book
	for _, b := range r.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) Create(ctx context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.books {
		if existing.ISBN != "" && existing.ISBN == b.ISBN {
			return ErrAlreadyExists
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.books[b.ID] = *b
	return nil
}

// Update mirrors the Postgres repo: the caller's AvailableCopies is
// ignored and the ledger's current count is adjusted by the
// total_copies delta.
func (r *MemoryRepo) Update(ctx context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.books[b.ID]
	if !ok {
		return ErrNotFound
	}
	adjusted := current.AvailableCopies + (b.TotalCopies - current.TotalCopies)
	if adjusted < 0 || adjusted > b.TotalCopies {
		return ErrInvariantViolation
	}
	b.AvailableCopies = adjusted
	b.Available = adjusted > 0
	b.UpdatedAt = time.Now()
	r.books[b.ID] = *b
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *MemoryRepo) Reserve(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return 0, ErrNotFound
	}
	if b.AvailableCopies <= 0 {
		return 0, ErrNoCopies
	}
	b.AvailableCopies--
	b.Available = b.AvailableCopies > 0
	b.UpdatedAt = time.Now()
	r.books[id] = b
	return b.AvailableCopies, nil
}

func (r *MemoryRepo) Release(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return 0, ErrNotFound
	}
	if b.AvailableCopies >= b.TotalCopies {
		return 0, ErrInvariantViolation
	}
	b.AvailableCopies++
	b.Available = true
	b.UpdatedAt = time.Now()
	r.books[id] = b
	return b.AvailableCopies, nil
}
