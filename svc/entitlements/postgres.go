package entitlements

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hearthhq/hearthkit/pkg/entitlement"
	"github.com/hearthhq/hearthkit/pkg/pg"
)

// PostgresStore persists billing records in the household_billing_status
// table (see the migrations directory).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given pgx pool.
// Panics if pool is nil.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("entitlements: postgres store requires a connection pool")
	}
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetBillingRecord(ctx context.Context, householdID uuid.UUID) (BillingRecord, error) {
	const query = `
		SELECT household_id, household_name, has_premium, provider,
		       premium_user_id, premium_user_name, updated_at
		FROM household_billing_status
		WHERE household_id = $1`

	var (
		rec           BillingRecord
		provider      string
		premiumUserID *uuid.UUID
		premiumName   *string
	)
	err := s.pool.QueryRow(ctx, query, householdID).Scan(
		&rec.HouseholdID,
		&rec.HouseholdName,
		&rec.HasPremium,
		&provider,
		&premiumUserID,
		&premiumName,
		&rec.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFound(err) {
			return BillingRecord{}, ErrNotFound
		}
		return BillingRecord{}, fmt.Errorf("load billing record: %w", err)
	}

	rec.Provider = entitlement.Provider(provider)
	if premiumUserID != nil {
		rec.PremiumUserID = *premiumUserID
	}
	if premiumName != nil {
		rec.PremiumUserName = *premiumName
	}
	return rec, nil
}

func (s *PostgresStore) SaveBillingRecord(ctx context.Context, rec BillingRecord) error {
	if rec.HouseholdID == uuid.Nil {
		return errors.New("billing record requires a household id")
	}

	const query = `
		INSERT INTO household_billing_status (
			household_id, household_name, has_premium, provider,
			premium_user_id, premium_user_name, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (household_id) DO UPDATE SET
			household_name    = EXCLUDED.household_name,
			has_premium       = EXCLUDED.has_premium,
			provider          = EXCLUDED.provider,
			premium_user_id   = EXCLUDED.premium_user_id,
			premium_user_name = EXCLUDED.premium_user_name,
			updated_at        = now()`

	var (
		premiumUserID *uuid.UUID
		premiumName   *string
	)
	if rec.PremiumUserID != uuid.Nil {
		premiumUserID = &rec.PremiumUserID
	}
	if rec.PremiumUserName != "" {
		premiumName = &rec.PremiumUserName
	}

	if _, err := s.pool.Exec(ctx, query,
		rec.HouseholdID,
		rec.HouseholdName,
		rec.HasPremium,
		string(rec.Provider),
		premiumUserID,
		premiumName,
	); err != nil {
		return fmt.Errorf("save billing record: %w", err)
	}
	return nil
}
