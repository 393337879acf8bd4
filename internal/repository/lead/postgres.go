package lead

import (
	"context"
	"errors"
	"io"
	"log"

	"crm-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadColumns = `id, customer_id, lead_source, status, value, description, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, l domain.Lead) (*domain.Lead, error) {
	const q = `
INSERT INTO leads (customer_id, lead_source, status, value, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + leadColumns
	return r.scanLead(r.pool.QueryRow(ctx, q, l.CustomerID, l.LeadSource, l.Status, l.Value, l.Description))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	const q = `
SELECT l.id, l.customer_id, l.lead_source, l.status, l.value, l.description, l.created_at, l.updated_at,
       c.name, c.email, c.phone
FROM leads l
LEFT JOIN customers c ON l.customer_id = c.id
WHERE l.id = $1`
	var l domain.Lead
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&l.ID, &l.CustomerID, &l.LeadSource, &l.Status, &l.Value, &l.Description,
		&l.CreatedAt, &l.UpdatedAt, &l.CustomerName, &l.CustomerEmail, &l.CustomerPhone,
	)
	if err != nil {
		return nil, r.mapError(err)
	}
	return &l, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Lead, error) {
	const q = `
SELECT l.id, l.customer_id, l.lead_source, l.status, l.value, l.description, l.created_at, l.updated_at,
       c.name, c.email
FROM leads l
LEFT JOIN customers c ON l.customer_id = c.id
ORDER BY l.created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []domain.Lead{}
	for rows.Next() {
		var l domain.Lead
		err := rows.Scan(
			&l.ID, &l.CustomerID, &l.LeadSource, &l.Status, &l.Value, &l.Description,
			&l.CreatedAt, &l.UpdatedAt, &l.CustomerName, &l.CustomerEmail,
		)
		if err != nil {
			r.logger.Printf("lead repo: scan error=%v", err)
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Lead, error) {
	const q = `SELECT ` + leadColumns + ` FROM leads WHERE customer_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []domain.Lead{}
	for rows.Next() {
		var l domain.Lead
		if err := rows.Scan(&l.ID, &l.CustomerID, &l.LeadSource, &l.Status, &l.Value, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
			r.logger.Printf("lead repo: scan error=%v", err)
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, l domain.Lead) (*domain.Lead, error) {
	const q = `
UPDATE leads
SET customer_id = $1, lead_source = $2, status = $3, value = $4, description = $5, updated_at = CURRENT_TIMESTAMP
WHERE id = $6
RETURNING ` + leadColumns
	return r.scanLead(r.pool.QueryRow(ctx, q, l.CustomerID, l.LeadSource, l.Status, l.Value, l.Description, l.ID))
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) (*domain.Lead, error) {
	const q = `DELETE FROM leads WHERE id = $1 RETURNING ` + leadColumns
	return r.scanLead(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS (SELECT 1 FROM leads WHERE id = $1)`
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) scanLead(row pgx.Row) (*domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(&l.ID, &l.CustomerID, &l.LeadSource, &l.Status, &l.Value, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, r.mapError(err)
	}
	return &l, nil
}

func (r *postgresRepo) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return &domain.NotFoundError{Entity: "Customer"}
	}
	r.logger.Printf("lead repo: error=%v", err)
	return err
}
