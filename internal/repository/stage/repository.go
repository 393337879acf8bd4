package stage

import (
	"context"

	"crm-backend/internal/domain"
)

// Repository persists stage history entries.
type Repository interface {
	Create(ctx context.Context, s domain.Stage) (*domain.Stage, error)
	GetByID(ctx context.Context, id int64) (*domain.Stage, error)
	List(ctx context.Context) ([]domain.Stage, error)
	ListByLead(ctx context.Context, leadID int64) ([]domain.Stage, error)
	UpdateName(ctx context.Context, id int64, stageName string) (*domain.Stage, error)
	Delete(ctx context.Context, id int64) (*domain.Stage, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
