package lead

import (
	"context"

	"crm-backend/internal/domain"
)

// Repository persists leads.
type Repository interface {
	Create(ctx context.Context, l domain.Lead) (*domain.Lead, error)
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Lead, error)
	Update(ctx context.Context, l domain.Lead) (*domain.Lead, error)
	Delete(ctx context.Context, id int64) (*domain.Lead, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
