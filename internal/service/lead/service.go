package lead

import (
	"context"

	"crm-backend/internal/domain"
	custrepo "crm-backend/internal/repository/customer"
	leadrepo "crm-backend/internal/repository/lead"
	"crm-backend/internal/validation"
)

// Service handles lead CRUD. Leads always belong to an existing customer.
type Service struct {
	repo      leadrepo.Repository
	customers custrepo.Repository
}

// New creates a Service.
func New(repo leadrepo.Repository, customers custrepo.Repository) *Service {
	return &Service{repo: repo, customers: customers}
}

// Input carries the fields accepted on create and update. A nil Value
// defaults to zero.
type Input struct {
	CustomerID  int64    `json:"customer_id"`
	LeadSource  string   `json:"lead_source"`
	Status      string   `json:"status"`
	Value       *float64 `json:"value"`
	Description *string  `json:"description"`
}

// Create validates, verifies the customer exists, then inserts.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Lead, error) {
	if errs := validation.Lead(in.CustomerID, in.LeadSource, in.Status, in.Value); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	if err := s.customerExists(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, s.toLead(0, in))
}

// Update replaces the record after the same checks.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Lead, error) {
	if errs := validation.Lead(in.CustomerID, in.LeadSource, in.Status, in.Value); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &domain.NotFoundError{Entity: "Lead"}
	}

	if err := s.customerExists(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	l, err := s.repo.Update(ctx, s.toLead(id, in))
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Lead"}
	}
	return l, err
}

// Get returns one lead with the owning customer's name, email and phone.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Lead, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Lead"}
	}
	return l, err
}

// List returns all leads joined with customer details, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Lead, error) {
	return s.repo.List(ctx)
}

// ListByCustomer returns a customer's leads, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Lead, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// Delete removes the lead and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Lead, error) {
	l, err := s.repo.Delete(ctx, id)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Lead"}
	}
	return l, err
}

func (s *Service) toLead(id int64, in Input) domain.Lead {
	value := 0.0
	if in.Value != nil {
		value = *in.Value
	}
	return domain.Lead{
		ID:          id,
		CustomerID:  in.CustomerID,
		LeadSource:  in.LeadSource,
		Status:      in.Status,
		Value:       value,
		Description: in.Description,
	}
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
