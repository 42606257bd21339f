// ==============================================================================
// FORM SCHEMA - internal/onboarding/schema.go
// ==============================================================================
// Ordered step catalog and the closed enumerations backing the KYB form.
// ==============================================================================

package onboarding

import "kyb/pkg/domain"

// FormStep describes one step of the onboarding workflow.
type FormStep struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// formSteps is the fixed, ordered onboarding step catalog.
var formSteps = []FormStep{
	{ID: 1, Title: "Basic Information", Description: "Organization details and structure"},
	{ID: 2, Title: "Contact & Address", Description: "Registered and operating addresses"},
	{ID: 3, Title: "Business Details", Description: "Industry, revenue, and operations"},
	{ID: 4, Title: "Banking Information", Description: "Financial account details"},
	{ID: 5, Title: "Ultimate Beneficial Owners", Description: "UBO information and ownership"},
	{ID: 6, Title: "Documents Upload", Description: "Required verification documents"},
	{ID: 7, Title: "Review & Submit", Description: "Final review and submission"},
}

// StepCount is the number of onboarding steps.
const StepCount = 7

// Step indices with meaning beyond ordering.
const (
	StepBasicInfo = 1
	StepUBOs      = 5
	StepDocuments = 6
	StepReview    = StepCount
)

// Steps returns the ordered onboarding step catalog.
func Steps() []FormStep {
	out := make([]FormStep, len(formSteps))
	copy(out, formSteps)
	return out
}

// LegalStructures maps each legal-structure key to its human label.
func LegalStructures() map[domain.LegalStructure]string {
	return map[domain.LegalStructure]string{
		domain.LegalStructureSoleProprietorship: "Sole Proprietorship",
		domain.LegalStructurePartnership:        "Partnership",
		domain.LegalStructureLLC:                "Limited Liability Company",
		domain.LegalStructureCorporation:        "Corporation",
		domain.LegalStructureNonProfit:          "Non-Profit Organization",
		domain.LegalStructureFoundation:         "Foundation",
		domain.LegalStructureTrust:              "Trust",
		domain.LegalStructureCooperative:        "Cooperative",
	}
}

// IndustrySectors maps each industry-sector key to its human label.
func IndustrySectors() map[domain.IndustrySector]string {
	return map[domain.IndustrySector]string{
		domain.IndustrySectorAgriculture:   "Agriculture",
		domain.IndustrySectorConstruction:  "Construction",
		domain.IndustrySectorEducation:     "Education",
		domain.IndustrySectorEnergy:        "Energy",
		domain.IndustrySectorFinance:       "Finance",
		domain.IndustrySectorHealthcare:    "Healthcare",
		domain.IndustrySectorHumanitarian:  "Humanitarian & Relief",
		domain.IndustrySectorManufacturing: "Manufacturing",
		domain.IndustrySectorRealEstate:    "Real Estate",
		domain.IndustrySectorRetail:        "Retail",
		domain.IndustrySectorTechnology:    "Technology",
		domain.IndustrySectorTransport:     "Transportation",
		domain.IndustrySectorOther:         "Other",
	}
}

// DocumentTypes maps each required document kind to its human label.
func DocumentTypes() map[domain.DocumentType]string {
	return map[domain.DocumentType]string{
		domain.DocumentTypeCertificateOfIncorporation: "Certificate of Incorporation",
		domain.DocumentTypeBusinessRegistration:       "Business Registration",
		domain.DocumentTypeTaxCertificate:             "Tax Certificate",
		domain.DocumentTypeProofOfAddress:             "Proof of Address",
		domain.DocumentTypeBankStatement:              "Bank Statement",
		domain.DocumentTypeBoardResolution:            "Board Resolution",
		domain.DocumentTypeOwnershipChart:             "Ownership Chart",
	}
}

// IsValidDocumentType reports whether t belongs to the document catalog.
func IsValidDocumentType(t domain.DocumentType) bool {
	_, ok := DocumentTypes()[t]
	return ok
}
