package customer

import (
	"context"

	"crm-backend/internal/domain"
)

// Repository persists customers.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) (*domain.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// EmailOrPhoneExists reports whether another customer already uses the
	// email or the phone. excludeID skips one record (0 skips none).
	EmailOrPhoneExists(ctx context.Context, email, phone string, excludeID int64) (bool, error)
}
