// ==============================================================================
// STATUS PROJECTION - internal/onboarding/status.go
// ==============================================================================
package onboarding

import (
	"strings"

	"kyb/pkg/domain"
)

// Badge is a display-ready label and visual class for a status value.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// StatusProjection is the read-side view of an organization's verification
// state, consumed by the dashboard.
type StatusProjection struct {
	Status Badge `json:"status"`
	Risk   Badge `json:"risk"`
}

var unknownBadge = Badge{Label: "UNKNOWN", Class: "badge-gray"}

// ProjectStatus derives the verification status and risk badges for a
// persisted organization. Total function: a nil organization or an unset
// status maps to an unknown badge rather than failing.
func ProjectStatus(org *domain.Organization) StatusProjection {
	if org == nil {
		return StatusProjection{Status: unknownBadge, Risk: unknownBadge}
	}
	return StatusProjection{
		Status: statusBadge(org.KYBStatus),
		Risk:   riskBadge(org.RiskRating),
	}
}

func statusBadge(status domain.KYBStatus) Badge {
	label := strings.ToUpper(strings.ReplaceAll(string(status), "_", " "))
	switch status {
	case domain.KYBStatusApproved:
		return Badge{Label: label, Class: "badge-green"}
	case domain.KYBStatusPending:
		return Badge{Label: label, Class: "badge-yellow"}
	case domain.KYBStatusInReview:
		return Badge{Label: label, Class: "badge-blue"}
	case domain.KYBStatusRejected:
		return Badge{Label: label, Class: "badge-red"}
	default:
		return unknownBadge
	}
}

func riskBadge(rating domain.RiskRating) Badge {
	label := strings.ToUpper(string(rating))
	switch rating {
	case domain.RiskRatingLow:
		return Badge{Label: label, Class: "badge-green"}
	case domain.RiskRatingMedium:
		return Badge{Label: label, Class: "badge-yellow"}
	case domain.RiskRatingHigh:
		return Badge{Label: label, Class: "badge-red"}
	default:
		return unknownBadge
	}
}
