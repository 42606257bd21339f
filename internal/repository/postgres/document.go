package postgres

import (
	"context"

	"kyb/pkg/domain"
	"kyb/pkg/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DocumentRepository persists KYB document metadata. Rows are append-only:
// re-submission inserts new rows rather than replacing old ones.
type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.KYBDocument) error {
	query := `
		INSERT INTO kyb_documents (
			id, organization_id, document_type, document_name,
			file_path, file_size, mime_type, created_at
		) VALUES (
			:id, :organization_id, :document_type, :document_name,
			:file_path, :file_size, :mime_type, :created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return errors.Wrap(err, "failed to create kyb document")
	}

	return nil
}

func (r *DocumentRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.KYBDocument, error) {
	query := `
		SELECT * FROM kyb_documents
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`

	var docs []domain.KYBDocument
	if err := r.db.SelectContext(ctx, &docs, query, orgID); err != nil {
		return nil, errors.Wrap(err, "failed to list kyb documents")
	}

	return docs, nil
}
