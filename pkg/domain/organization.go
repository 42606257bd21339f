// Package domain defines the core business entities for the KYB platform.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==============================================================================
// ENUMS & STATUS TYPES
// ==============================================================================

// KYBStatus represents the verification status of an organization.
type KYBStatus string

const (
	KYBStatusPending  KYBStatus = "pending"
	KYBStatusInReview KYBStatus = "in_review"
	KYBStatusApproved KYBStatus = "approved"
	KYBStatusRejected KYBStatus = "rejected"
)

// RiskRating represents the derived risk rating of an organization.
type RiskRating string

const (
	RiskRatingLow    RiskRating = "low"
	RiskRatingMedium RiskRating = "medium"
	RiskRatingHigh   RiskRating = "high"
)

// LegalStructure represents the legal form of an organization.
type LegalStructure string

const (
	LegalStructureSoleProprietorship LegalStructure = "sole_proprietorship"
	LegalStructurePartnership        LegalStructure = "partnership"
	LegalStructureLLC                LegalStructure = "llc"
	LegalStructureCorporation        LegalStructure = "corporation"
	LegalStructureNonProfit          LegalStructure = "non_profit"
	LegalStructureFoundation         LegalStructure = "foundation"
	LegalStructureTrust              LegalStructure = "trust"
	LegalStructureCooperative        LegalStructure = "cooperative"
)

// IndustrySector represents the business classification of an organization.
type IndustrySector string

const (
	IndustrySectorAgriculture   IndustrySector = "agriculture"
	IndustrySectorConstruction  IndustrySector = "construction"
	IndustrySectorEducation     IndustrySector = "education"
	IndustrySectorEnergy        IndustrySector = "energy"
	IndustrySectorFinance       IndustrySector = "finance"
	IndustrySectorHealthcare    IndustrySector = "healthcare"
	IndustrySectorHumanitarian  IndustrySector = "humanitarian"
	IndustrySectorManufacturing IndustrySector = "manufacturing"
	IndustrySectorRealEstate    IndustrySector = "real_estate"
	IndustrySectorRetail        IndustrySector = "retail"
	IndustrySectorTechnology    IndustrySector = "technology"
	IndustrySectorTransport     IndustrySector = "transportation"
	IndustrySectorOther         IndustrySector = "other"
)

// DocumentType represents the fixed catalog of KYB verification documents.
type DocumentType string

const (
	DocumentTypeCertificateOfIncorporation DocumentType = "certificate_of_incorporation"
	DocumentTypeBusinessRegistration       DocumentType = "business_registration"
	DocumentTypeTaxCertificate             DocumentType = "tax_certificate"
	DocumentTypeProofOfAddress             DocumentType = "proof_of_address"
	DocumentTypeBankStatement              DocumentType = "bank_statement"
	DocumentTypeBoardResolution            DocumentType = "board_resolution"
	DocumentTypeOwnershipChart             DocumentType = "ownership_chart"
)

// ==============================================================================
// ORGANIZATION PROFILE
// ==============================================================================

// Organization is the identity and compliance record for a claimant entity.
// Exactly one organization exists per claimant; re-submission overwrites it.
type Organization struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`

	// ========== IDENTITY ==========
	OrganizationName        string         `json:"organization_name" db:"organization_name"`
	LegalName               string         `json:"legal_name,omitempty" db:"legal_name"`
	TradingName             string         `json:"trading_name,omitempty" db:"trading_name"`
	RegistrationNumber      string         `json:"registration_number,omitempty" db:"registration_number"`
	TaxIdentificationNumber string         `json:"tax_identification_number,omitempty" db:"tax_identification_number"`
	VATNumber               string         `json:"vat_number,omitempty" db:"vat_number"`
	LegalStructure          LegalStructure `json:"legal_structure,omitempty" db:"legal_structure"`
	IncorporationDate       *time.Time     `json:"incorporation_date,omitempty" db:"incorporation_date"`
	IncorporationCountry    string         `json:"incorporation_country,omitempty" db:"incorporation_country"`
	IncorporationState      string         `json:"incorporation_state,omitempty" db:"incorporation_state"`

	// ========== REGISTERED ADDRESS ==========
	RegisteredAddressLine1 string `json:"registered_address_line1,omitempty" db:"registered_address_line1"`
	RegisteredAddressLine2 string `json:"registered_address_line2,omitempty" db:"registered_address_line2"`
	RegisteredCity         string `json:"registered_city,omitempty" db:"registered_city"`
	RegisteredState        string `json:"registered_state,omitempty" db:"registered_state"`
	RegisteredPostalCode   string `json:"registered_postal_code,omitempty" db:"registered_postal_code"`
	RegisteredCountry      string `json:"registered_country,omitempty" db:"registered_country"`

	// ========== OPERATING ADDRESS ==========
	OperatingAddressLine1 string `json:"operating_address_line1,omitempty" db:"operating_address_line1"`
	OperatingAddressLine2 string `json:"operating_address_line2,omitempty" db:"operating_address_line2"`
	OperatingCity         string `json:"operating_city,omitempty" db:"operating_city"`
	OperatingState        string `json:"operating_state,omitempty" db:"operating_state"`
	OperatingPostalCode   string `json:"operating_postal_code,omitempty" db:"operating_postal_code"`
	OperatingCountry      string `json:"operating_country,omitempty" db:"operating_country"`

	// ========== CONTACT ==========
	PhoneNumber string `json:"phone_number,omitempty" db:"phone_number"`
	Email       string `json:"email,omitempty" db:"email"`
	Website     string `json:"website,omitempty" db:"website"`

	// ========== BUSINESS CLASSIFICATION ==========
	IndustrySector      IndustrySector `json:"industry_sector,omitempty" db:"industry_sector"`
	BusinessDescription string         `json:"business_description,omitempty" db:"business_description"`
	NAICSCode           string         `json:"naics_code,omitempty" db:"naics_code"`
	SICCode             string         `json:"sic_code,omitempty" db:"sic_code"`

	// ========== SCALE METRICS ==========
	AnnualRevenue     *decimal.Decimal `json:"annual_revenue,omitempty" db:"annual_revenue"`
	NumberOfEmployees *int             `json:"number_of_employees,omitempty" db:"number_of_employees"`

	// ========== BANKING ==========
	BankName          string `json:"bank_name,omitempty" db:"bank_name"`
	BankAccountNumber string `json:"bank_account_number,omitempty" db:"bank_account_number"`
	BankRoutingNumber string `json:"bank_routing_number,omitempty" db:"bank_routing_number"`
	IBAN              string `json:"iban,omitempty" db:"iban"`
	SWIFTCode         string `json:"swift_code,omitempty" db:"swift_code"`

	// ========== RISK ==========
	PoliticallyExposed   bool       `json:"politically_exposed" db:"politically_exposed"`
	HighRiskJurisdiction bool       `json:"high_risk_jurisdiction" db:"high_risk_jurisdiction"`
	RiskRating           RiskRating `json:"risk_rating,omitempty" db:"risk_rating"`

	// ========== VERIFICATION ==========
	LogoURL   string    `json:"logo_url,omitempty" db:"logo_url"`
	KYBStatus KYBStatus `json:"kyb_status" db:"kyb_status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ==============================================================================
// ULTIMATE BENEFICIAL OWNER
// ==============================================================================

// UBO is a natural person with a declared ownership stake in an organization.
// The UBO set attached to a submission fully replaces any prior set.
type UBO struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	OrganizationID      uuid.UUID       `json:"organization_id" db:"organization_id"`
	FirstName           string          `json:"first_name" db:"first_name"`
	LastName            string          `json:"last_name" db:"last_name"`
	PositionTitle       string          `json:"position_title,omitempty" db:"position_title"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage" db:"ownership_percentage"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
}

// ==============================================================================
// KYB DOCUMENT
// ==============================================================================

// KYBDocument is a metadata record pointing to an uploaded verification file.
// Documents are append-only: re-submission adds rows, never replaces them.
type KYBDocument struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	OrganizationID uuid.UUID    `json:"organization_id" db:"organization_id"`
	DocumentType   DocumentType `json:"document_type" db:"document_type"`
	DocumentName   string       `json:"document_name" db:"document_name"`
	FilePath       string       `json:"file_path" db:"file_path"`
	FileSize       int64        `json:"file_size" db:"file_size"`
	MimeType       string       `json:"mime_type" db:"mime_type"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

// ==============================================================================
// FUND VAULT (read-only, dashboard display)
// ==============================================================================

// FundVaultStatus represents the lifecycle status of a fund vault.
type FundVaultStatus string

const (
	FundVaultStatusActive FundVaultStatus = "active"
	FundVaultStatusClosed FundVaultStatus = "closed"
)

// FundVault is a disbursement pool shown on the dashboard. The onboarding
// workflow only ever reads these.
type FundVault struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description,omitempty" db:"description"`
	TargetAmount decimal.Decimal `json:"target_amount" db:"target_amount"`
	RaisedAmount decimal.Decimal `json:"raised_amount" db:"raised_amount"`
	Status       FundVaultStatus `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
