package contact

import (
	"context"

	"crm-backend/internal/domain"
)

// Repository persists contacts. Create and Update apply the primary-contact
// demotion and the write inside a single transaction: when the incoming
// contact is primary, every other contact of the same customer and type loses
// its primary flag before the row lands, so the group never ends up with two
// primaries or, on failure, zero.
type Repository interface {
	Create(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Contact, error)
	ListByType(ctx context.Context, contactType string) ([]domain.Contact, error)
	Update(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, id int64) (*domain.Contact, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// ValueExists reports whether the customer already has a contact with the
	// value. excludeID skips one record (0 skips none).
	ValueExists(ctx context.Context, customerID int64, value string, excludeID int64) (bool, error)
}
