package stage

import (
	"context"

	"crm-backend/internal/domain"
	leadrepo "crm-backend/internal/repository/lead"
	stagerepo "crm-backend/internal/repository/stage"
	"crm-backend/internal/validation"
)

// Service handles pipeline stage history. Stages always belong to an existing
// lead; updates only rename the stage.
type Service struct {
	repo  stagerepo.Repository
	leads leadrepo.Repository
}

// New creates a Service.
func New(repo stagerepo.Repository, leads leadrepo.Repository) *Service {
	return &Service{repo: repo, leads: leads}
}

// Input carries the fields accepted on create.
type Input struct {
	LeadID    int64  `json:"lead_id"`
	StageName string `json:"stage_name"`
}

// Create validates, verifies the lead exists, then inserts.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Stage, error) {
	if errs := validation.Stage(in.LeadID, in.StageName); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	exists, err := s.leads.Exists(ctx, in.LeadID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &domain.NotFoundError{Entity: "Lead"}
	}

	return s.repo.Create(ctx, domain.Stage{LeadID: in.LeadID, StageName: in.StageName})
}

// UpdateName renames the stage entry.
func (s *Service) UpdateName(ctx context.Context, id int64, stageName string) (*domain.Stage, error) {
	if msg := validation.Required(stageName, "Stage name"); msg != "" {
		return nil, &domain.ValidationError{Errors: []string{msg}}
	}

	st, err := s.repo.UpdateName(ctx, id, stageName)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Stage"}
	}
	return st, err
}

// Get returns one stage with lead and customer details.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Stage, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Stage"}
	}
	return st, err
}

// List returns all stages joined with lead and customer details, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Stage, error) {
	return s.repo.List(ctx)
}

// ListByLead returns a lead's stage history, newest first.
func (s *Service) ListByLead(ctx context.Context, leadID int64) ([]domain.Stage, error) {
	return s.repo.ListByLead(ctx, leadID)
}

// Delete removes the stage and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Stage, error) {
	st, err := s.repo.Delete(ctx, id)
	if err == domain.ErrNotFound {
		return nil, &domain.NotFoundError{Entity: "Stage"}
	}
	return st, err
}
