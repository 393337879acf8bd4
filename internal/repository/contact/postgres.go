package contact

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

const contactColumns = `id, customer_id, contact_type, contact_value, is_primary, created_at, updated_at`

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

func (r *postgresRepo) Create(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if c.IsPrimary {
		_, err = tx.Exec(ctx, `
UPDATE contacts SET is_primary = FALSE
WHERE customer_id = $1 AND contact_type = $2 AND is_primary`,
			c.CustomerID, c.ContactType)
		if err != nil {
			return nil, err
		}
	}

	out, err := scanContact(tx.QueryRow(ctx, `
INSERT INTO contacts (customer_id, contact_type, contact_value, is_primary)
VALUES ($1, $2, $3, $4)
RETURNING `+contactColumns,
		c.CustomerID, c.ContactType, c.ContactValue, c.IsPrimary))
	if err != nil {
		return nil, r.mapError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if c.IsPrimary {
		// Demote everything else in the group, but never the row being
		// replaced, so a no-op update of the current primary stays primary.
		_, err = tx.Exec(ctx, `
UPDATE contacts SET is_primary = FALSE
WHERE customer_id = $1 AND contact_type = $2 AND id != $3 AND is_primary`,
			c.CustomerID, c.ContactType, c.ID)
		if err != nil {
			return nil, err
		}
	}

	out, err := scanContact(tx.QueryRow(ctx, `
UPDATE contacts
SET customer_id = $1, contact_type = $2, contact_value = $3, is_primary = $4, updated_at = CURRENT_TIMESTAMP
WHERE id = $5
RETURNING `+contactColumns,
		c.CustomerID, c.ContactType, c.ContactValue, c.IsPrimary, c.ID))
	if err != nil {
		return nil, r.mapError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	const q = `
SELECT c.id, c.customer_id, c.contact_type, c.contact_value, c.is_primary, c.created_at, c.updated_at,
       cu.name, cu.email
FROM contacts c
LEFT JOIN customers cu ON c.customer_id = cu.id
WHERE c.id = $1`
	var c domain.Contact
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&c.ID, &c.CustomerID, &c.ContactType, &c.ContactValue, &c.IsPrimary,
		&c.CreatedAt, &c.UpdatedAt, &c.CustomerName, &c.CustomerEmail,
	)
	if err != nil {
		return nil, r.mapError(err)
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Contact, error) {
	const q = `
SELECT c.id, c.customer_id, c.contact_type, c.contact_value, c.is_primary, c.created_at, c.updated_at,
       cu.name, cu.email
FROM contacts c
LEFT JOIN customers cu ON c.customer_id = cu.id
ORDER BY c.is_primary DESC, c.created_at DESC`
	return r.queryJoined(ctx, q)
}

func (r *postgresRepo) ListByType(ctx context.Context, contactType string) ([]domain.Contact, error) {
	const q = `
SELECT c.id, c.customer_id, c.contact_type, c.contact_value, c.is_primary, c.created_at, c.updated_at,
       cu.name, cu.email
FROM contacts c
LEFT JOIN customers cu ON c.customer_id = cu.id
WHERE c.contact_type = $1
ORDER BY c.is_primary DESC, c.created_at DESC`
	return r.queryJoined(ctx, q, contactType)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Contact, error) {
	const q = `
SELECT ` + contactColumns + `
FROM contacts
WHERE customer_id = $1
ORDER BY is_primary DESC, contact_type, created_at DESC`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.ContactType, &c.ContactValue, &c.IsPrimary, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Printf("contact repo: scan error=%v", err)
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) (*domain.Contact, error) {
	const q = `DELETE FROM contacts WHERE id = $1 RETURNING ` + contactColumns
	out, err := scanContact(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, r.mapError(err)
	}
	return out, nil
}

func (r *postgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS (SELECT 1 FROM contacts WHERE id = $1)`
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) ValueExists(ctx context.Context, customerID int64, value string, excludeID int64) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS (SELECT 1 FROM contacts WHERE customer_id = $1 AND contact_value = $2 AND id != $3)`
	if err := r.pool.QueryRow(ctx, q, customerID, value, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) queryJoined(ctx context.Context, q string, args ...any) ([]domain.Contact, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		err := rows.Scan(
			&c.ID, &c.CustomerID, &c.ContactType, &c.ContactValue, &c.IsPrimary,
			&c.CreatedAt, &c.UpdatedAt, &c.CustomerName, &c.CustomerEmail,
		)
		if err != nil {
			r.logger.Printf("contact repo: scan error=%v", err)
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *postgresRepo) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503": // customer deleted between the pre-check and the write
			return &domain.NotFoundError{Entity: "Customer"}
		}
	}
	r.logger.Printf("contact repo: error=%v", err)
	return err
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.CustomerID, &c.ContactType, &c.ContactValue, &c.IsPrimary, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
