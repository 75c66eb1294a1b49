package service

import (
	"context"

	"github.com/Sevrus/billed/internal/models"
)

// BillStore is the persistence boundary the bill services talk to.
// Implemented by repository.BillRepository; tests substitute fakes.
type BillStore interface {
	List(ctx context.Context) ([]models.Bill, error)
	Create(ctx context.Context, draft models.BillDraft) (models.BillCreated, error)
	Update(ctx context.Context, bill models.Bill) (models.Bill, error)
}

// UserStore is the user lookup boundary consumed by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
