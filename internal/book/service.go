package book

import (
	"context"
)

// Service provides catalog-level business logic. Copy counters are only
// initialized here; once a book exists, the ledger owns them.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListAvailable(ctx context.Context) ([]Book, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registers a new title. Defaults to a single copy when no count
// is given, matching the catalog's historical behavior.
func (s *Service) Create(ctx context.Context, b *Book) error {
	if b.TotalCopies <= 0 {
		b.TotalCopies = 1
	}
	b.AvailableCopies = b.TotalCopies
	b.Available = b.AvailableCopies > 0
	return s.repo.Create(ctx, b)
}

// Update edits catalog fields. Availability arithmetic stays with the
// repository so it cannot clobber concurrent reservations.
func (s *Service) Update(ctx context.Context, b *Book) error {
	return s.repo.Update(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
