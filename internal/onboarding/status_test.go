package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kyb/pkg/domain"
)

func TestProjectStatusBadges(t *testing.T) {
	cases := []struct {
		status    domain.KYBStatus
		wantLabel string
		wantClass string
	}{
		{domain.KYBStatusApproved, "APPROVED", "badge-green"},
		{domain.KYBStatusPending, "PENDING", "badge-yellow"},
		{domain.KYBStatusInReview, "IN REVIEW", "badge-blue"},
		{domain.KYBStatusRejected, "REJECTED", "badge-red"},
	}

	for _, tc := range cases {
		org := &domain.Organization{KYBStatus: tc.status}
		got := ProjectStatus(org)
		assert.Equal(t, tc.wantLabel, got.Status.Label, "status %s", tc.status)
		assert.Equal(t, tc.wantClass, got.Status.Class, "status %s", tc.status)
	}
}

func TestProjectStatusRiskBadges(t *testing.T) {
	cases := []struct {
		risk      domain.RiskRating
		wantLabel string
		wantClass string
	}{
		{domain.RiskRatingLow, "LOW", "badge-green"},
		{domain.RiskRatingMedium, "MEDIUM", "badge-yellow"},
		{domain.RiskRatingHigh, "HIGH", "badge-red"},
	}

	for _, tc := range cases {
		org := &domain.Organization{KYBStatus: domain.KYBStatusPending, RiskRating: tc.risk}
		got := ProjectStatus(org)
		assert.Equal(t, tc.wantLabel, got.Risk.Label, "risk %s", tc.risk)
		assert.Equal(t, tc.wantClass, got.Risk.Class, "risk %s", tc.risk)
	}
}

func TestProjectStatusNilOrganization(t *testing.T) {
	got := ProjectStatus(nil)
	assert.Equal(t, "UNKNOWN", got.Status.Label)
	assert.Equal(t, "badge-gray", got.Status.Class)
	assert.Equal(t, "UNKNOWN", got.Risk.Label)
}

func TestProjectStatusUnknownValues(t *testing.T) {
	org := &domain.Organization{
		KYBStatus:  domain.KYBStatus("archived"),
		RiskRating: domain.RiskRating("extreme"),
	}
	got := ProjectStatus(org)
	assert.Equal(t, "UNKNOWN", got.Status.Label)
	assert.Equal(t, "badge-gray", got.Status.Class)
	assert.Equal(t, "UNKNOWN", got.Risk.Label)
	assert.Equal(t, "badge-gray", got.Risk.Class)
}

func TestProjectStatusEmptyStatus(t *testing.T) {
	// A zero-valued organization projects unknown badges rather than failing.
	got := ProjectStatus(&domain.Organization{})
	assert.Equal(t, "UNKNOWN", got.Status.Label)
	assert.Equal(t, "UNKNOWN", got.Risk.Label)
}
