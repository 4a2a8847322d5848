package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"domaininfo/internal/domain"
	"domaininfo/internal/ports"
)

// InsertLookup implements ports.LookupRepository.
func (db *DB) InsertLookup(ctx context.Context, e ports.LookupEntry) error {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return fmt.Errorf("lookup id %q: %w", e.ID, err)
	}
	rec := e.Record

	var riskScore *int
	if rec.Status == domain.StatusSuccess {
		riskScore = &rec.RiskScore
	}

	_, err = db.Pool.Exec(ctx, `
        INSERT INTO lookups (id, query, domain, status, origin, created_date, expiry_date, registrar, age_days, risk_score, resolved_at)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11)
        ON CONFLICT (id) DO NOTHING
    `, id, e.Query, rec.Domain.String(), string(rec.Status), rec.Origin,
		rec.CreatedDate, rec.ExpiryDate, rec.Registrar, rec.AgeDays, riskScore, e.ResolvedAt)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	return nil
}

// CountLookups returns how many lookups were stored for name.
func (db *DB) CountLookups(ctx context.Context, name domain.Name) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM lookups WHERE domain = $1`, name.String()).Scan(&n)
	return n, err
}

var _ ports.LookupRepository = (*DB)(nil)
