package stage

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

const stageColumns = `id, lead_id, stage_name, created_at, updated_at`

// Joined projection adds lead pipeline fields and the customer behind them.
const stageJoinedQuery = `
SELECT s.id, s.lead_id, s.stage_name, s.created_at, s.updated_at,
       l.lead_source, l.status, l.value, c.name, c.email
FROM stages s
LEFT JOIN leads l ON s.lead_id = l.id
LEFT JOIN customers c ON l.customer_id = c.id`

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

func (r *postgresRepo) Create(ctx context.Context, s domain.Stage) (*domain.Stage, error) {
	const q = `INSERT INTO stages (lead_id, stage_name) VALUES ($1, $2) RETURNING ` + stageColumns
	return r.scanStage(r.pool.QueryRow(ctx, q, s.LeadID, s.StageName))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Stage, error) {
	var s domain.Stage
	err := r.pool.QueryRow(ctx, stageJoinedQuery+` WHERE s.id = $1`, id).Scan(
		&s.ID, &s.LeadID, &s.StageName, &s.CreatedAt, &s.UpdatedAt,
		&s.LeadSource, &s.LeadStatus, &s.LeadValue, &s.CustomerName, &s.CustomerEmail,
	)
	if err != nil {
		return nil, r.mapError(err)
	}
	return &s, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Stage, error) {
	rows, err := r.pool.Query(ctx, stageJoinedQuery+` ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := []domain.Stage{}
	for rows.Next() {
		var s domain.Stage
		err := rows.Scan(
			&s.ID, &s.LeadID, &s.StageName, &s.CreatedAt, &s.UpdatedAt,
			&s.LeadSource, &s.LeadStatus, &s.LeadValue, &s.CustomerName, &s.CustomerEmail,
		)
		if err != nil {
			r.logger.Printf("stage repo: scan error=%v", err)
			return nil, err
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

func (r *postgresRepo) ListByLead(ctx context.Context, leadID int64) ([]domain.Stage, error) {
	const q = `SELECT ` + stageColumns + ` FROM stages WHERE lead_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := []domain.Stage{}
	for rows.Next() {
		var s domain.Stage
		if err := rows.Scan(&s.ID, &s.LeadID, &s.StageName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			r.logger.Printf("stage repo: scan error=%v", err)
			return nil, err
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

func (r *postgresRepo) UpdateName(ctx context.Context, id int64, stageName string) (*domain.Stage, error) {
	const q = `
UPDATE stages SET stage_name = $1, updated_at = CURRENT_TIMESTAMP
WHERE id = $2
RETURNING ` + stageColumns
	return r.scanStage(r.pool.QueryRow(ctx, q, stageName, id))
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) (*domain.Stage, error) {
	const q = `DELETE FROM stages WHERE id = $1 RETURNING ` + stageColumns
	return r.scanStage(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS (SELECT 1 FROM stages WHERE id = $1)`
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) scanStage(row pgx.Row) (*domain.Stage, error) {
	var s domain.Stage
	err := row.Scan(&s.ID, &s.LeadID, &s.StageName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, r.mapError(err)
	}
	return &s, nil
}

func (r *postgresRepo) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return &domain.NotFoundError{Entity: "Lead"}
	}
	r.logger.Printf("stage repo: error=%v", err)
	return err
}
