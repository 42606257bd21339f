package postgres

import (
	"context"

	"kyb/pkg/domain"
	"kyb/pkg/errors"

	"github.com/jmoiron/sqlx"
)

// FundVaultRepository reads disbursement pools for dashboard display. The
// onboarding workflow never writes this table.
type FundVaultRepository struct {
	db *sqlx.DB
}

func NewFundVaultRepository(db *sqlx.DB) *FundVaultRepository {
	return &FundVaultRepository{db: db}
}

func (r *FundVaultRepository) ListActive(ctx context.Context) ([]domain.FundVault, error) {
	query := `
		SELECT * FROM fund_vaults
		WHERE status = $1
		ORDER BY created_at DESC
	`

	var vaults []domain.FundVault
	if err := r.db.SelectContext(ctx, &vaults, query, domain.FundVaultStatusActive); err != nil {
		return nil, errors.Wrap(err, "failed to list fund vaults")
	}

	return vaults, nil
}
