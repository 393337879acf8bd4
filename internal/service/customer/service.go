package customer

import (
	"context"

	"crm-backend/internal/domain"
	custrepo "crm-backend/internal/repository/customer"
	"crm-backend/internal/validation"
)

// Service handles customer CRUD with uniqueness checks on email and phone.
type Service struct {
	repo custrepo.Repository
}

// New creates a Service.
func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the fields accepted on create and update. Updates are
// full-record replacements; there is no partial patch.
type Input struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`
}

// Create validates the payload, rejects duplicate email/phone, then inserts.
// The database unique constraints back the pre-check under concurrency.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Customer, error) {
	if errs := validation.Customer(in.Name, in.Email, in.Phone); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	taken, err := s.repo.EmailOrPhoneExists(ctx, in.Email, in.Phone, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Message: "Email or phone already exists"}
	}

	c, err := s.repo.Create(ctx, domain.Customer{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Address: in.Address,
	})
	if err == domain.ErrAlreadyExists {
		return nil, &domain.ConflictError{Message: "Email or phone already exists"}
	}
	return c, err
}

// Update replaces the record after the same validation and uniqueness checks,
// excluding the record itself from the duplicate scan.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Customer, error) {
	if errs := validation.Customer(in.Name, in.Email, in.Phone); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &domain.NotFoundError{Entity: "Customer"}
	}

	taken, err := s.repo.EmailOrPhoneExists(ctx, in.Email, in.Phone, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Message: "Email or phone already exists for another customer"}
	}

	c, err := s.repo.Update(ctx, domain.Customer{
		ID:      id,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Address: in.Address,
	})
	switch err {
	case domain.ErrNotFound:
		return nil, &domain.NotFoundError{Entity: "Customer"}
	case domain.ErrAlreadyExists:
		return nil, &domain.ConflictError{Message: "Email or phone already exists for another customer"}
	}
	return c, err
}

// Get returns one customer by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Customer"}
	}
	return c, err
}

// List returns all customers, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

// Delete removes the customer and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.repo.Delete(ctx, id)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Customer"}
	}
	return c, err
}
