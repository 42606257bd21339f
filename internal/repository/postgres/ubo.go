package postgres

import (
	"context"

	"kyb/pkg/domain"
	"kyb/pkg/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UBORepository persists ultimate beneficial owner rows. The UBO set for an
// organization is replaced wholesale on every submission.
type UBORepository struct {
	db *sqlx.DB
}

func NewUBORepository(db *sqlx.DB) *UBORepository {
	return &UBORepository{db: db}
}

// ReplaceForOrganization swaps the full UBO set for an organization inside
// one transaction, so a failed replacement leaves the prior set intact.
func (r *UBORepository) ReplaceForOrganization(ctx context.Context, orgID uuid.UUID, ubos []domain.UBO) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin ubo transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM ultimate_beneficial_owners WHERE organization_id = $1`, orgID); err != nil {
		return errors.Wrap(err, "failed to clear prior ubo set")
	}

	query := `
		INSERT INTO ultimate_beneficial_owners (
			id, organization_id, first_name, last_name,
			position_title, ownership_percentage, created_at
		) VALUES (
			:id, :organization_id, :first_name, :last_name,
			:position_title, :ownership_percentage, :created_at
		)
	`
	for i := range ubos {
		if _, err := tx.NamedExecContext(ctx, query, &ubos[i]); err != nil {
			return errors.Wrap(err, "failed to insert ubo")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit ubo replacement")
	}

	return nil
}

func (r *UBORepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.UBO, error) {
	query := `
		SELECT * FROM ultimate_beneficial_owners
		WHERE organization_id = $1
		ORDER BY created_at, id
	`

	var ubos []domain.UBO
	if err := r.db.SelectContext(ctx, &ubos, query, orgID); err != nil {
		return nil, errors.Wrap(err, "failed to list ubos")
	}

	return ubos, nil
}
