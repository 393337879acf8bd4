package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type customerSeed struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Address string

	Contacts []contactSeed
	Leads    []leadSeed
}

type contactSeed struct {
	Type    string
	Value   string
	Primary bool
}

type leadSeed struct {
	Source      string
	Status      string
	Value       float64
	Description string
	Stages      []string
}

// Apply inserts a demo dataset for manual testing. It is idempotent via
// ON CONFLICT / existence checks.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureUser(ctx, pool, "demo", "demo@example.com", "demo-password"); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	customers := []customerSeed{
		{
			Name:    "Shivani Sharma",
			Email:   "shivani.sharma@techcorp.com",
			Phone:   "+91-9876543210",
			Company: "TechCorp Solutions",
			Address: "123 Business Park, Mumbai, Maharashtra",
			Contacts: []contactSeed{
				{Type: "email", Value: "shivani.work@techcorp.com", Primary: true},
				{Type: "phone", Value: "+91-9876543210", Primary: false},
			},
			Leads: []leadSeed{
				{
					Source:      "Website Contact Form",
					Status:      "new",
					Value:       50000,
					Description: "Interested in enterprise software solution",
					Stages:      []string{"Initial Contact", "Needs Assessment"},
				},
			},
		},
		{
			Name:    "Rahul Kumar",
			Email:   "rahul@innovate.com",
			Phone:   "+91-9876543211",
			Company: "Innovate Ltd",
			Address: "456 Tech Street, Delhi, India",
			Contacts: []contactSeed{
				{Type: "email", Value: "rahul.work@innovate.com", Primary: true},
			},
			Leads: []leadSeed{
				{
					Source:      "Direct Sales Call",
					Status:      "qualified",
					Value:       75000,
					Description: "Ready for proposal presentation",
					Stages:      []string{"Proposal Sent"},
				},
			},
		},
	}

	for _, c := range customers {
		if err := upsertCustomer(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.Email, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, username, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (username, email, password)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, username, email, string(hashed))
	return err
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) error {
	const q = `
INSERT INTO customers (name, email, phone, company, address)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`
	var customerID int64
	if err := pool.QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.Company, c.Address).Scan(&customerID); err != nil {
		return err
	}

	for _, ct := range c.Contacts {
		const cq = `
INSERT INTO contacts (customer_id, contact_type, contact_value, is_primary)
VALUES ($1, $2, $3, $4)
ON CONFLICT (customer_id, contact_value) DO NOTHING
`
		if _, err := pool.Exec(ctx, cq, customerID, ct.Type, ct.Value, ct.Primary); err != nil {
			return err
		}
	}

	for _, l := range c.Leads {
		leadID, err := ensureLead(ctx, pool, customerID, l)
		if err != nil {
			return err
		}
		for _, name := range l.Stages {
			if err := ensureStage(ctx, pool, leadID, name); err != nil {
				return err
			}
		}
	}

	return nil
}

func ensureLead(ctx context.Context, pool *pgxpool.Pool, customerID int64, l leadSeed) (int64, error) {
	var leadID int64
	const sel = `SELECT id FROM leads WHERE customer_id = $1 AND lead_source = $2 LIMIT 1`
	err := pool.QueryRow(ctx, sel, customerID, l.Source).Scan(&leadID)
	if err == nil {
		return leadID, nil
	}

	const ins = `
INSERT INTO leads (customer_id, lead_source, status, value, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	if err := pool.QueryRow(ctx, ins, customerID, l.Source, l.Status, l.Value, l.Description).Scan(&leadID); err != nil {
		return 0, err
	}
	return leadID, nil
}

func ensureStage(ctx context.Context, pool *pgxpool.Pool, leadID int64, name string) error {
	const q = `
INSERT INTO stages (lead_id, stage_name)
SELECT $1, $2
WHERE NOT EXISTS (SELECT 1 FROM stages WHERE lead_id = $1 AND stage_name = $2)
`
	_, err := pool.Exec(ctx, q, leadID, name)
	return err
}
