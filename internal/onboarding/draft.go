// ==============================================================================
// DRAFT STATE STORE - internal/onboarding/draft.go
// ==============================================================================
// In-memory working copy of a KYB submission. Owned by one editing session,
// never persisted directly; the submission orchestrator reads it on submit.
// ==============================================================================

package onboarding

import (
	"fmt"
	"strconv"
	"time"

	"kyb/pkg/domain"
	kyberrors "kyb/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field is the closed set of organization profile fields a draft accepts.
type Field string

const (
	FieldOrganizationName        Field = "organization_name"
	FieldLegalName               Field = "legal_name"
	FieldTradingName             Field = "trading_name"
	FieldRegistrationNumber      Field = "registration_number"
	FieldTaxIdentificationNumber Field = "tax_identification_number"
	FieldVATNumber               Field = "vat_number"
	FieldLegalStructure          Field = "legal_structure"
	FieldIncorporationDate       Field = "incorporation_date"
	FieldIncorporationCountry    Field = "incorporation_country"
	FieldIncorporationState      Field = "incorporation_state"
	FieldRegisteredAddressLine1  Field = "registered_address_line1"
	FieldRegisteredAddressLine2  Field = "registered_address_line2"
	FieldRegisteredCity          Field = "registered_city"
	FieldRegisteredState         Field = "registered_state"
	FieldRegisteredPostalCode    Field = "registered_postal_code"
	FieldRegisteredCountry       Field = "registered_country"
	FieldOperatingAddressLine1   Field = "operating_address_line1"
	FieldOperatingAddressLine2   Field = "operating_address_line2"
	FieldOperatingCity           Field = "operating_city"
	FieldOperatingState          Field = "operating_state"
	FieldOperatingPostalCode     Field = "operating_postal_code"
	FieldOperatingCountry        Field = "operating_country"
	FieldPhoneNumber             Field = "phone_number"
	FieldEmail                   Field = "email"
	FieldWebsite                 Field = "website"
	FieldIndustrySector          Field = "industry_sector"
	FieldBusinessDescription     Field = "business_description"
	FieldNAICSCode               Field = "naics_code"
	FieldSICCode                 Field = "sic_code"
	FieldAnnualRevenue           Field = "annual_revenue"
	FieldNumberOfEmployees       Field = "number_of_employees"
	FieldBankName                Field = "bank_name"
	FieldBankAccountNumber       Field = "bank_account_number"
	FieldBankRoutingNumber       Field = "bank_routing_number"
	FieldIBAN                    Field = "iban"
	FieldSWIFTCode               Field = "swift_code"
	FieldPoliticallyExposed      Field = "politically_exposed"
	FieldHighRiskJurisdiction    Field = "high_risk_jurisdiction"
)

// UBOForm is an in-progress UBO row on the draft.
type UBOForm struct {
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
	PositionTitle       string          `json:"position_title"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage" validate:"ownership_pct"`
}

// UBOField is the closed set of UBO row fields.
type UBOField string

const (
	UBOFieldFirstName           UBOField = "first_name"
	UBOFieldLastName            UBOField = "last_name"
	UBOFieldPositionTitle       UBOField = "position_title"
	UBOFieldOwnershipPercentage UBOField = "ownership_percentage"
)

// FileHandle is a pending file attachment held in memory until submission.
type FileHandle struct {
	Name     string
	Size     int64
	MimeType string
	Data     []byte
}

// Draft holds one claimant's in-progress KYB submission. All operations are
// synchronous and mutate only the draft; no I/O happens here.
type Draft struct {
	Profile   domain.Organization
	UBOs      []UBOForm
	Documents map[domain.DocumentType]*FileHandle
	Logo *FileHandle
	Nav  *Navigator

	// LastError carries the most recent submission abort reason; Submit
	// clears it once a submission goes through.
	LastError string

	existingID *uuid.UUID
}

// NewDraft builds a draft, pre-populated from an existing persisted profile
// when one is supplied.
func NewDraft(existing *domain.Organization) *Draft {
	d := &Draft{
		Documents: make(map[domain.DocumentType]*FileHandle),
		Nav:       NewNavigator(),
	}
	if existing != nil {
		d.Profile = *existing
		id := existing.ID
		d.existingID = &id
	}
	return d
}

// ExistingID returns the persisted organization identity the draft was
// initialized from, or uuid.Nil when this is a first submission.
func (d *Draft) ExistingID() uuid.UUID {
	if d.existingID == nil {
		return uuid.Nil
	}
	return *d.existingID
}

// SetField applies a last-write-wins structural update to one profile field.
// No validation happens here; unknown fields and mismatched value types are
// the only errors.
func (d *Draft) SetField(field Field, value interface{}) error {
	switch field {
	case FieldOrganizationName:
		return setString(&d.Profile.OrganizationName, field, value)
	case FieldLegalName:
		return setString(&d.Profile.LegalName, field, value)
	case FieldTradingName:
		return setString(&d.Profile.TradingName, field, value)
	case FieldRegistrationNumber:
		return setString(&d.Profile.RegistrationNumber, field, value)
	case FieldTaxIdentificationNumber:
		return setString(&d.Profile.TaxIdentificationNumber, field, value)
	case FieldVATNumber:
		return setString(&d.Profile.VATNumber, field, value)
	case FieldLegalStructure:
		s, err := asString(field, value)
		if err != nil {
			return err
		}
		d.Profile.LegalStructure = domain.LegalStructure(s)
		return nil
	case FieldIncorporationDate:
		t, err := asTime(field, value)
		if err != nil {
			return err
		}
		d.Profile.IncorporationDate = t
		return nil
	case FieldIncorporationCountry:
		return setString(&d.Profile.IncorporationCountry, field, value)
	case FieldIncorporationState:
		return setString(&d.Profile.IncorporationState, field, value)
	case FieldRegisteredAddressLine1:
		return setString(&d.Profile.RegisteredAddressLine1, field, value)
	case FieldRegisteredAddressLine2:
		return setString(&d.Profile.RegisteredAddressLine2, field, value)
	case FieldRegisteredCity:
		return setString(&d.Profile.RegisteredCity, field, value)
	case FieldRegisteredState:
		return setString(&d.Profile.RegisteredState, field, value)
	case FieldRegisteredPostalCode:
		return setString(&d.Profile.RegisteredPostalCode, field, value)
	case FieldRegisteredCountry:
		return setString(&d.Profile.RegisteredCountry, field, value)
	case FieldOperatingAddressLine1:
		return setString(&d.Profile.OperatingAddressLine1, field, value)
	case FieldOperatingAddressLine2:
		return setString(&d.Profile.OperatingAddressLine2, field, value)
	case FieldOperatingCity:
		return setString(&d.Profile.OperatingCity, field, value)
	case FieldOperatingState:
		return setString(&d.Profile.OperatingState, field, value)
	case FieldOperatingPostalCode:
		return setString(&d.Profile.OperatingPostalCode, field, value)
	case FieldOperatingCountry:
		return setString(&d.Profile.OperatingCountry, field, value)
	case FieldPhoneNumber:
		return setString(&d.Profile.PhoneNumber, field, value)
	case FieldEmail:
		return setString(&d.Profile.Email, field, value)
	case FieldWebsite:
		return setString(&d.Profile.Website, field, value)
	case FieldIndustrySector:
		s, err := asString(field, value)
		if err != nil {
			return err
		}
		d.Profile.IndustrySector = domain.IndustrySector(s)
		return nil
	case FieldBusinessDescription:
		return setString(&d.Profile.BusinessDescription, field, value)
	case FieldNAICSCode:
		return setString(&d.Profile.NAICSCode, field, value)
	case FieldSICCode:
		return setString(&d.Profile.SICCode, field, value)
	case FieldAnnualRevenue:
		dec, err := asDecimal(field, value)
		if err != nil {
			return err
		}
		d.Profile.AnnualRevenue = dec
		return nil
	case FieldNumberOfEmployees:
		n, err := asInt(field, value)
		if err != nil {
			return err
		}
		d.Profile.NumberOfEmployees = n
		return nil
	case FieldBankName:
		return setString(&d.Profile.BankName, field, value)
	case FieldBankAccountNumber:
		return setString(&d.Profile.BankAccountNumber, field, value)
	case FieldBankRoutingNumber:
		return setString(&d.Profile.BankRoutingNumber, field, value)
	case FieldIBAN:
		return setString(&d.Profile.IBAN, field, value)
	case FieldSWIFTCode:
		return setString(&d.Profile.SWIFTCode, field, value)
	case FieldPoliticallyExposed:
		return setBool(&d.Profile.PoliticallyExposed, field, value)
	case FieldHighRiskJurisdiction:
		return setBool(&d.Profile.HighRiskJurisdiction, field, value)
	default:
		return fmt.Errorf("unknown draft field %q", field)
	}
}

// AddUBO appends a zero-valued UBO row and returns its index.
func (d *Draft) AddUBO() int {
	d.UBOs = append(d.UBOs, UBOForm{OwnershipPercentage: decimal.Zero})
	return len(d.UBOs) - 1
}

// UpdateUBO mutates one field of the UBO row at index.
func (d *Draft) UpdateUBO(index int, field UBOField, value interface{}) error {
	if index < 0 || index >= len(d.UBOs) {
		return kyberrors.ErrUBOIndexOutOfRange
	}

	ubo := &d.UBOs[index]
	switch field {
	case UBOFieldFirstName:
		return setString(&ubo.FirstName, Field(field), value)
	case UBOFieldLastName:
		return setString(&ubo.LastName, Field(field), value)
	case UBOFieldPositionTitle:
		return setString(&ubo.PositionTitle, Field(field), value)
	case UBOFieldOwnershipPercentage:
		dec, err := asDecimal(Field(field), value)
		if err != nil {
			return err
		}
		if dec == nil {
			ubo.OwnershipPercentage = decimal.Zero
		} else {
			ubo.OwnershipPercentage = *dec
		}
		return nil
	default:
		return fmt.Errorf("unknown ubo field %q", field)
	}
}

// RemoveUBO deletes the UBO row at index, preserving order of the rest.
func (d *Draft) RemoveUBO(index int) error {
	if index < 0 || index >= len(d.UBOs) {
		return kyberrors.ErrUBOIndexOutOfRange
	}
	d.UBOs = append(d.UBOs[:index], d.UBOs[index+1:]...)
	return nil
}

// AttachDocument stages a file for the given document type. A prior pending
// file for the same type is replaced; the last attachment wins.
func (d *Draft) AttachDocument(docType domain.DocumentType, file *FileHandle) error {
	if !IsValidDocumentType(docType) {
		return kyberrors.ErrInvalidDocumentType
	}
	d.Documents[docType] = file
	return nil
}

// AttachLogo stages a logo file, replacing any prior pending logo.
func (d *Draft) AttachLogo(file *FileHandle) {
	d.Logo = file
}

// ==============================================================================
// VALUE COERCION HELPERS
// ==============================================================================

func setString(dst *string, field Field, value interface{}) error {
	s, err := asString(field, value)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func setBool(dst *bool, field Field, value interface{}) error {
	switch v := value.(type) {
	case bool:
		*dst = v
		return nil
	case string:
		if v == "" {
			*dst = false
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("field %q expects bool: %w", field, err)
		}
		*dst = b
		return nil
	default:
		return fmt.Errorf("field %q expects bool, got %T", field, value)
	}
}

func asString(field Field, value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("field %q expects string, got %T", field, value)
	}
}

func asTime(field Field, value interface{}) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("field %q expects YYYY-MM-DD date: %w", field, err)
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("field %q expects date, got %T", field, value)
	}
}

func asDecimal(field Field, value interface{}) (*decimal.Decimal, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case decimal.Decimal:
		return &v, nil
	case *decimal.Decimal:
		return v, nil
	case float64:
		d := decimal.NewFromFloat(v)
		return &d, nil
	case int:
		d := decimal.NewFromInt(int64(v))
		return &d, nil
	case string:
		if v == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("field %q expects decimal: %w", field, err)
		}
		return &d, nil
	default:
		return nil, fmt.Errorf("field %q expects decimal, got %T", field, value)
	}
}

func asInt(field Field, value interface{}) (*int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		return &v, nil
	case *int:
		return v, nil
	case float64:
		n := int(v)
		return &n, nil
	case string:
		if v == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("field %q expects integer: %w", field, err)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("field %q expects integer, got %T", field, value)
	}
}
