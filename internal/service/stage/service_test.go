package stage

import (
	"context"
	"errors"
	"testing"

	"crm-backend/internal/domain"
)

type memoryRepo struct {
	nextID int64
	stages map[int64]domain.Stage
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, stages: make(map[int64]domain.Stage)}
}

func (r *memoryRepo) Create(_ context.Context, s domain.Stage) (*domain.Stage, error) {
	s.ID = r.nextID
	r.nextID++
	r.stages[s.ID] = s
	clone := s
	return &clone, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Stage, error) {
	s, ok := r.stages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := s
	return &clone, nil
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Stage, error) {
	out := []domain.Stage{}
	for _, s := range r.stages {
		out = append(out, s)
	}
	return out, nil
}

func (r *memoryRepo) ListByLead(_ context.Context, leadID int64) ([]domain.Stage, error) {
	out := []domain.Stage{}
	for _, s := range r.stages {
		if s.LeadID == leadID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepo) UpdateName(_ context.Context, id int64, stageName string) (*domain.Stage, error) {
	s, ok := r.stages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.StageName = stageName
	r.stages[id] = s
	clone := s
	return &clone, nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) (*domain.Stage, error) {
	s, ok := r.stages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.stages, id)
	clone := s
	return &clone, nil
}

func (r *memoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.stages[id]
	return ok, nil
}

type stubLeads struct {
	ids map[int64]bool
}

func (s *stubLeads) Exists(_ context.Context, id int64) (bool, error) { return s.ids[id], nil }
func (s *stubLeads) Create(context.Context, domain.Lead) (*domain.Lead, error) {
	panic("not used")
}
func (s *stubLeads) GetByID(context.Context, int64) (*domain.Lead, error) { panic("not used") }
func (s *stubLeads) List(context.Context) ([]domain.Lead, error)          { panic("not used") }
func (s *stubLeads) ListByCustomer(context.Context, int64) ([]domain.Lead, error) {
	panic("not used")
}
func (s *stubLeads) Update(context.Context, domain.Lead) (*domain.Lead, error) {
	panic("not used")
}
func (s *stubLeads) Delete(context.Context, int64) (*domain.Lead, error) { panic("not used") }

func newService(repo *memoryRepo, leadIDs ...int64) *Service {
	ids := make(map[int64]bool, len(leadIDs))
	for _, id := range leadIDs {
		ids[id] = true
	}
	return New(repo, &stubLeads{ids: ids})
}

func TestCreate_Succeeds(t *testing.T) {
	svc := newService(newMemoryRepo(), 1)

	st, err := svc.Create(context.Background(), Input{LeadID: 1, StageName: "Initial Contact"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.ID == 0 || st.StageName != "Initial Contact" {
		t.Fatalf("unexpected stage: %+v", st)
	}
}

func TestCreate_MissingLeadWritesNothing(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)

	_, err := svc.Create(context.Background(), Input{LeadID: 9, StageName: "Initial Contact"})
	var nfErr *domain.NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Entity != "Lead" {
		t.Fatalf("expected Lead not found, got %v", err)
	}
	if len(repo.stages) != 0 {
		t.Fatalf("no row should be written, got %d", len(repo.stages))
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	svc := newService(newMemoryRepo(), 1)

	_, err := svc.Create(context.Background(), Input{})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Errors) != 2 {
		t.Fatalf("expected 2 messages, got %v", vErr.Errors)
	}
}

func TestUpdateName(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{LeadID: 1, StageName: "Initial Contact"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateName(ctx, created.ID, "Needs Assessment")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StageName != "Needs Assessment" {
		t.Fatalf("rename not applied: %+v", updated)
	}

	if _, err := svc.UpdateName(ctx, created.ID, "  "); err == nil {
		t.Fatal("blank name should be rejected")
	}
	if _, err := svc.UpdateName(ctx, 99, "X"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete_ReturnsRecordThenNotFound(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{LeadID: 1, StageName: "Initial Contact"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("unexpected deleted record: %+v", deleted)
	}
	if _, err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
