package user

import (
	"context"
	"time"
)

// Service provides member directory logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a new member, active by default with membership
// starting today.
func (s *Service) Register(ctx context.Context, u *User) error {
	u.Active = true
	if u.MembershipDate == nil {
		now := time.Now()
		u.MembershipDate = &now
	}
	return s.repo.Create(ctx, u)
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}
