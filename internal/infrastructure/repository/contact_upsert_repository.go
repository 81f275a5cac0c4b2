package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

// RETURNING (xmax = 0) is true only when the statement inserted the row.
const upsertContactSQL = `
INSERT INTO contacts (name, email, phone, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
ON CONFLICT (email) DO UPDATE
  SET name = EXCLUDED.name,
      phone = EXCLUDED.phone,
      updated_at = NOW()
RETURNING (xmax = 0) AS inserted
`

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ domain.ContactUpserter = (*ContactUpsertRepository)(nil)

type ContactUpsertRepository struct {
	db rowQuerier
}

func NewContactUpsertRepository(pool *pgxpool.Pool) *ContactUpsertRepository {
	return &ContactUpsertRepository{db: pool}
}

func (r *ContactUpsertRepository) UpsertByEmail(ctx context.Context, email, name, phone string) (bool, error) {
	var inserted bool
	if err := r.db.QueryRow(ctx, upsertContactSQL, name, email, phone).Scan(&inserted); err != nil {
		return false, fmt.Errorf("upsert contact by email: %w", err)
	}
	return inserted, nil
}
