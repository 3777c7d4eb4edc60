package user

import (
	"context"
)

// Repository defines the contract for user data storage.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, u *User) error
	SetActive(ctx context.Context, id string, active bool) error
}
