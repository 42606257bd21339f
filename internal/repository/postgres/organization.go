package postgres

import (
	"context"
	"database/sql"
	"time"

	"kyb/pkg/domain"
	"kyb/pkg/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// OrganizationRepository persists organization profiles. One profile exists
// per claimant; the user_id column carries a unique constraint.
type OrganizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Organization, error) {
	query := `
		SELECT * FROM organizations
		WHERE user_id = $1
	`

	var org domain.Organization
	err := r.db.GetContext(ctx, &org, query, userID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrOrganizationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get organization")
	}

	return &org, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	now := time.Now()
	org.CreatedAt = now
	org.UpdatedAt = now

	query := `
		INSERT INTO organizations (
			id, user_id,
			organization_name, legal_name, trading_name,
			registration_number, tax_identification_number, vat_number,
			legal_structure, incorporation_date, incorporation_country, incorporation_state,
			registered_address_line1, registered_address_line2, registered_city,
			registered_state, registered_postal_code, registered_country,
			operating_address_line1, operating_address_line2, operating_city,
			operating_state, operating_postal_code, operating_country,
			phone_number, email, website,
			industry_sector, business_description, naics_code, sic_code,
			annual_revenue, number_of_employees,
			bank_name, bank_account_number, bank_routing_number, iban, swift_code,
			politically_exposed, high_risk_jurisdiction, risk_rating,
			logo_url, kyb_status, created_at, updated_at
		) VALUES (
			:id, :user_id,
			:organization_name, :legal_name, :trading_name,
			:registration_number, :tax_identification_number, :vat_number,
			:legal_structure, :incorporation_date, :incorporation_country, :incorporation_state,
			:registered_address_line1, :registered_address_line2, :registered_city,
			:registered_state, :registered_postal_code, :registered_country,
			:operating_address_line1, :operating_address_line2, :operating_city,
			:operating_state, :operating_postal_code, :operating_country,
			:phone_number, :email, :website,
			:industry_sector, :business_description, :naics_code, :sic_code,
			:annual_revenue, :number_of_employees,
			:bank_name, :bank_account_number, :bank_routing_number, :iban, :swift_code,
			:politically_exposed, :high_risk_jurisdiction, :risk_rating,
			:logo_url, :kyb_status, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, org)
	if err != nil {
		return errors.Wrap(err, "failed to create organization")
	}

	return nil
}

// Update overwrites every mutable field of the organization row. Submission
// semantics are full overwrite, so no partial update variant exists.
func (r *OrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	org.UpdatedAt = time.Now()

	query := `
		UPDATE organizations SET
			organization_name = :organization_name,
			legal_name = :legal_name,
			trading_name = :trading_name,
			registration_number = :registration_number,
			tax_identification_number = :tax_identification_number,
			vat_number = :vat_number,
			legal_structure = :legal_structure,
			incorporation_date = :incorporation_date,
			incorporation_country = :incorporation_country,
			incorporation_state = :incorporation_state,
			registered_address_line1 = :registered_address_line1,
			registered_address_line2 = :registered_address_line2,
			registered_city = :registered_city,
			registered_state = :registered_state,
			registered_postal_code = :registered_postal_code,
			registered_country = :registered_country,
			operating_address_line1 = :operating_address_line1,
			operating_address_line2 = :operating_address_line2,
			operating_city = :operating_city,
			operating_state = :operating_state,
			operating_postal_code = :operating_postal_code,
			operating_country = :operating_country,
			phone_number = :phone_number,
			email = :email,
			website = :website,
			industry_sector = :industry_sector,
			business_description = :business_description,
			naics_code = :naics_code,
			sic_code = :sic_code,
			annual_revenue = :annual_revenue,
			number_of_employees = :number_of_employees,
			bank_name = :bank_name,
			bank_account_number = :bank_account_number,
			bank_routing_number = :bank_routing_number,
			iban = :iban,
			swift_code = :swift_code,
			politically_exposed = :politically_exposed,
			high_risk_jurisdiction = :high_risk_jurisdiction,
			risk_rating = :risk_rating,
			logo_url = :logo_url,
			kyb_status = :kyb_status,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, org)
	if err != nil {
		return errors.Wrap(err, "failed to update organization")
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return errors.ErrOrganizationNotFound
	}

	return nil
}
