package contact

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"crm-backend/internal/domain"
)

// memoryRepo mirrors the transactional demote-then-write behavior of the
// Postgres repository: writing a primary contact demotes every other contact
// of the same customer and type in the same step.
type memoryRepo struct {
	nextID   int64
	contacts map[int64]domain.Contact
	now      time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, contacts: make(map[int64]domain.Contact), now: time.Now()}
}

func (r *memoryRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *memoryRepo) demote(customerID int64, contactType string, excludeID int64) {
	for id, c := range r.contacts {
		if id == excludeID {
			continue
		}
		if c.CustomerID == customerID && c.ContactType == contactType && c.IsPrimary {
			c.IsPrimary = false
			r.contacts[id] = c
		}
	}
}

func (r *memoryRepo) Create(_ context.Context, c domain.Contact) (*domain.Contact, error) {
	if c.IsPrimary {
		r.demote(c.CustomerID, c.ContactType, 0)
	}
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	r.contacts[c.ID] = c
	clone := c
	return &clone, nil
}

func (r *memoryRepo) Update(_ context.Context, c domain.Contact) (*domain.Contact, error) {
	existing, ok := r.contacts[c.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if c.IsPrimary {
		r.demote(c.CustomerID, c.ContactType, c.ID)
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.tick()
	r.contacts[c.ID] = c
	clone := c
	return &clone, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := c
	return &clone, nil
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Contact, error) {
	out := []domain.Contact{}
	for _, c := range r.contacts {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryRepo) ListByCustomer(_ context.Context, customerID int64) ([]domain.Contact, error) {
	out := []domain.Contact{}
	for _, c := range r.contacts {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		if out[i].ContactType != out[j].ContactType {
			return out[i].ContactType < out[j].ContactType
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryRepo) ListByType(_ context.Context, contactType string) ([]domain.Contact, error) {
	out := []domain.Contact{}
	for _, c := range r.contacts {
		if c.ContactType == contactType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.contacts, id)
	clone := c
	return &clone, nil
}

func (r *memoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.contacts[id]
	return ok, nil
}

func (r *memoryRepo) ValueExists(_ context.Context, customerID int64, value string, excludeID int64) (bool, error) {
	for _, c := range r.contacts {
		if c.ID == excludeID {
			continue
		}
		if c.CustomerID == customerID && c.ContactValue == value {
			return true, nil
		}
	}
	return false, nil
}

// stubCustomers reports existence for a fixed id set.
type stubCustomers struct {
	ids map[int64]bool
}

func (s *stubCustomers) Exists(_ context.Context, id int64) (bool, error) {
	return s.ids[id], nil
}

func (s *stubCustomers) Create(context.Context, domain.Customer) (*domain.Customer, error) {
	panic("not used")
}
func (s *stubCustomers) GetByID(context.Context, int64) (*domain.Customer, error) {
	panic("not used")
}
func (s *stubCustomers) List(context.Context) ([]domain.Customer, error) { panic("not used") }
func (s *stubCustomers) Update(context.Context, domain.Customer) (*domain.Customer, error) {
	panic("not used")
}
func (s *stubCustomers) Delete(context.Context, int64) (*domain.Customer, error) {
	panic("not used")
}
func (s *stubCustomers) EmailOrPhoneExists(context.Context, string, string, int64) (bool, error) {
	panic("not used")
}

func newService(repo *memoryRepo, customerIDs ...int64) *Service {
	ids := make(map[int64]bool, len(customerIDs))
	for _, id := range customerIDs {
		ids[id] = true
	}
	return New(repo, &stubCustomers{ids: ids})
}

func countPrimaries(t *testing.T, repo *memoryRepo, customerID int64, contactType string) (int, int64) {
	t.Helper()
	count := 0
	var lastID int64
	for _, c := range repo.contacts {
		if c.CustomerID == customerID && c.ContactType == contactType && c.IsPrimary {
			count++
			lastID = c.ID
		}
	}
	return count, lastID
}

func TestCreate_SecondPrimaryDemotesFirst(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)
	ctx := context.Background()

	first, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "a@x.com", IsPrimary: true})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "b@x.com", IsPrimary: true})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	count, primaryID := countPrimaries(t, repo, 1, "email")
	if count != 1 {
		t.Fatalf("expected exactly one primary, got %d", count)
	}
	if primaryID != second.ID {
		t.Fatalf("expected latest contact %d to be primary, got %d", second.ID, primaryID)
	}
	got, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if got.IsPrimary {
		t.Fatal("first contact should have been demoted")
	}
}

func TestCreate_PrimariesOfDifferentTypesCoexist(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "a@x.com", IsPrimary: true}); err != nil {
		t.Fatalf("email create: %v", err)
	}
	if _, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "phone", ContactValue: "+911234567890", IsPrimary: true}); err != nil {
		t.Fatalf("phone create: %v", err)
	}

	if count, _ := countPrimaries(t, repo, 1, "email"); count != 1 {
		t.Fatalf("email primaries = %d, want 1", count)
	}
	if count, _ := countPrimaries(t, repo, 1, "phone"); count != 1 {
		t.Fatalf("phone primaries = %d, want 1", count)
	}
}

func TestCreate_NonPrimaryLeavesExistingPrimaryAlone(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)
	ctx := context.Background()

	primary, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "a@x.com", IsPrimary: true})
	if err != nil {
		t.Fatalf("primary create: %v", err)
	}
	if _, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "b@x.com"}); err != nil {
		t.Fatalf("secondary create: %v", err)
	}

	count, primaryID := countPrimaries(t, repo, 1, "email")
	if count != 1 || primaryID != primary.ID {
		t.Fatalf("expected %d to stay primary, got count=%d id=%d", primary.ID, count, primaryID)
	}
}

func TestCreate_DuplicateValueScopedToCustomer(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1, 2)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "a@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "work", ContactValue: "a@x.com"})
	var cErr *domain.ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError for same customer, got %v", err)
	}
	if cErr.Message != "Contact value already exists for this customer" {
		t.Fatalf("unexpected message: %q", cErr.Message)
	}

	// The same value under a different customer is fine.
	if _, err := svc.Create(ctx, Input{CustomerID: 2, ContactType: "email", ContactValue: "a@x.com"}); err != nil {
		t.Fatalf("create for other customer: %v", err)
	}
}

func TestCreate_MissingCustomerWritesNothing(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)

	_, err := svc.Create(context.Background(), Input{CustomerID: 99, ContactType: "email", ContactValue: "a@x.com"})
	var nfErr *domain.NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Entity != "Customer" {
		t.Fatalf("expected Customer not found, got %v", err)
	}
	if len(repo.contacts) != 0 {
		t.Fatalf("no row should be written, got %d", len(repo.contacts))
	}
}

func TestUpdate_PrimaryDemotionExcludesSelf(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)
	ctx := context.Background()

	primary, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "a@x.com", IsPrimary: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A full-record update of the current primary keeps it primary.
	updated, err := svc.Update(ctx, primary.ID, Input{CustomerID: 1, ContactType: "email", ContactValue: "new@x.com", IsPrimary: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsPrimary {
		t.Fatal("updated contact lost its primary flag")
	}
	if count, _ := countPrimaries(t, repo, 1, "email"); count != 1 {
		t.Fatalf("expected one primary after self-update, got %d", count)
	}
}

func TestUpdate_PromotionDemotesCurrentPrimary(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "a@x.com", IsPrimary: true}); err != nil {
		t.Fatalf("create primary: %v", err)
	}
	secondary, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "b@x.com"})
	if err != nil {
		t.Fatalf("create secondary: %v", err)
	}

	if _, err := svc.Update(ctx, secondary.ID, Input{CustomerID: 1, ContactType: "email", ContactValue: "b@x.com", IsPrimary: true}); err != nil {
		t.Fatalf("promote: %v", err)
	}

	count, primaryID := countPrimaries(t, repo, 1, "email")
	if count != 1 || primaryID != secondary.ID {
		t.Fatalf("expected %d to be sole primary, got count=%d id=%d", secondary.ID, count, primaryID)
	}
}

func TestUpdate_MissingContactIsNotFound(t *testing.T) {
	svc := newService(newMemoryRepo(), 1)

	_, err := svc.Update(context.Background(), 42, Input{CustomerID: 1, ContactType: "email", ContactValue: "a@x.com"})
	var nfErr *domain.NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Entity != "Contact" {
		t.Fatalf("expected Contact not found, got %v", err)
	}
}

func TestCreate_EmailTypeRequiresValidValue(t *testing.T) {
	svc := newService(newMemoryRepo(), 1)

	_, err := svc.Create(context.Background(), Input{CustomerID: 1, ContactType: "email", ContactValue: "12345"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Errors) != 1 || vErr.Errors[0] != "Invalid email format: cannot contain only numbers" {
		t.Fatalf("unexpected errors: %v", vErr.Errors)
	}
}

func TestListByCustomer_PrimaryFirstThenTypeThenNewest(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 1)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "phone", ContactValue: "+911234567890"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "old@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	primary, err := svc.Create(ctx, Input{CustomerID: 1, ContactType: "email", ContactValue: "main@x.com", IsPrimary: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	contacts, err := svc.ListByCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(contacts) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(contacts))
	}
	if contacts[0].ID != primary.ID {
		t.Fatalf("expected primary first, got %+v", contacts[0])
	}
}
