package contact

import (
	"context"

	"crm-backend/internal/domain"
	contactrepo "crm-backend/internal/repository/contact"
	custrepo "crm-backend/internal/repository/customer"
	"crm-backend/internal/validation"
)

// Service handles contact CRUD and owns the primary-contact rule: for a given
// (customer, contact_type) at most one contact is primary. The repository
// applies demotion and write in one transaction; this layer runs the pure
// validation, the parent existence check and the per-customer value
// uniqueness check in front of it.
type Service struct {
	repo      contactrepo.Repository
	customers custrepo.Repository
}

// New creates a Service.
func New(repo contactrepo.Repository, customers custrepo.Repository) *Service {
	return &Service{repo: repo, customers: customers}
}

// Input carries the fields accepted on create and update.
type Input struct {
	CustomerID   int64  `json:"customer_id"`
	ContactType  string `json:"contact_type"`
	ContactValue string `json:"contact_value"`
	IsPrimary    bool   `json:"is_primary"`
}

// Create validates, verifies the customer exists, rejects a duplicate value
// for that customer, then inserts (demoting other primaries of the same type
// when the new contact is primary).
func (s *Service) Create(ctx context.Context, in Input) (*domain.Contact, error) {
	if errs := validation.Contact(in.CustomerID, in.ContactType, in.ContactValue); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	if err := s.customerExists(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	dup, err := s.repo.ValueExists(ctx, in.CustomerID, in.ContactValue, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, &domain.ConflictError{Message: "Contact value already exists for this customer"}
	}

	c, err := s.repo.Create(ctx, domain.Contact{
		CustomerID:   in.CustomerID,
		ContactType:  in.ContactType,
		ContactValue: in.ContactValue,
		IsPrimary:    in.IsPrimary,
	})
	if err == domain.ErrAlreadyExists {
		return nil, &domain.ConflictError{Message: "Contact value already exists for this customer"}
	}
	return c, err
}

// Update replaces the record with the same checks, excluding the record
// itself from the duplicate scan and from the primary demotion.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Contact, error) {
	if errs := validation.Contact(in.CustomerID, in.ContactType, in.ContactValue); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &domain.NotFoundError{Entity: "Contact"}
	}

	if err := s.customerExists(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	dup, err := s.repo.ValueExists(ctx, in.CustomerID, in.ContactValue, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, &domain.ConflictError{Message: "Contact value already exists for this customer"}
	}

	c, err := s.repo.Update(ctx, domain.Contact{
		ID:           id,
		CustomerID:   in.CustomerID,
		ContactType:  in.ContactType,
		ContactValue: in.ContactValue,
		IsPrimary:    in.IsPrimary,
	})
	switch err {
	case domain.ErrNotFound:
		return nil, &domain.NotFoundError{Entity: "Contact"}
	case domain.ErrAlreadyExists:
		return nil, &domain.ConflictError{Message: "Contact value already exists for this customer"}
	}
	return c, err
}

// Get returns one contact with its customer's name and email.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Contact"}
	}
	return c, err
}

// List returns all contacts joined with customer details, primary first.
func (s *Service) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.List(ctx)
}

// ListByCustomer returns a customer's contacts: primary first, then type,
// then newest.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Contact, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// ListByType returns contacts of one type across customers, primary first.
func (s *Service) ListByType(ctx context.Context, contactType string) ([]domain.Contact, error) {
	return s.repo.ListByType(ctx, contactType)
}

// Delete removes the contact and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Contact, error) {
	c, err := s.repo.Delete(ctx, id)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Contact"}
	}
	return c, err
}

func (s *Service) customerExists(ctx context.Context, customerID int64) error {
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Customer"}
	}
	return nil
}
