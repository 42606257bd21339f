// ==============================================================================
// DASHBOARD SERVICE - internal/dashboard/service.go
// ==============================================================================
// Read side of the onboarding flow: assembles the claimant's verification
// overview (organization profile, status badges, beneficial owners, submitted
// documents, open fund vaults) with Redis-backed caching of the status
// projection.
// ==============================================================================

package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kyb/internal/onboarding"
	"kyb/pkg/cache"
	"kyb/pkg/domain"
	"kyb/pkg/errors"
	"kyb/pkg/logger"
)

// defaultStatusTTL bounds how stale a cached status projection may be when
// no explicit TTL is configured.
const defaultStatusTTL = 5 * time.Minute

// OrganizationReader loads the claimant's organization profile.
type OrganizationReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Organization, error)
}

// UBOReader lists the beneficial owners recorded for an organization.
type UBOReader interface {
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.UBO, error)
}

// DocumentReader lists the documents recorded for an organization.
type DocumentReader interface {
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.KYBDocument, error)
}

// FundVaultReader lists the fund vaults open for contribution.
type FundVaultReader interface {
	ListActive(ctx context.Context) ([]domain.FundVault, error)
}

// Overview is everything the dashboard renders for one claimant.
type Overview struct {
	Organization *domain.Organization         `json:"organization"`
	Status       onboarding.StatusProjection  `json:"status"`
	UBOs         []domain.UBO                 `json:"ubos"`
	Documents    []domain.KYBDocument         `json:"documents"`
	FundVaults   []domain.FundVault           `json:"fund_vaults"`
}

// Service assembles dashboard read models.
type Service struct {
	orgs      OrganizationReader
	ubos      UBOReader
	docs      DocumentReader
	vaults    FundVaultReader
	cache     *cache.RedisCache
	statusTTL time.Duration
	logger    logger.Logger
}

// NewService constructs a dashboard Service. The cache may be nil, in which
// case every status read goes to the database. A zero statusTTL falls back
// to the default.
func NewService(orgs OrganizationReader, ubos UBOReader, docs DocumentReader, vaults FundVaultReader, c *cache.RedisCache, statusTTL time.Duration, log logger.Logger) *Service {
	if statusTTL <= 0 {
		statusTTL = defaultStatusTTL
	}
	return &Service{
		orgs:      orgs,
		ubos:      ubos,
		docs:      docs,
		vaults:    vaults,
		cache:     c,
		statusTTL: statusTTL,
		logger:    log,
	}
}

// Overview loads the full dashboard view for a claimant. A claimant with no
// organization yet gets a nil profile and unknown badges, not an error.
func (s *Service) Overview(ctx context.Context, claimantID uuid.UUID) (*Overview, error) {
	org, err := s.orgs.FindByUserID(ctx, claimantID)
	if err != nil && !errors.Is(err, errors.ErrOrganizationNotFound) {
		return nil, errors.Wrap(err, "failed to load organization")
	}

	out := &Overview{
		Organization: org,
		Status:       onboarding.ProjectStatus(org),
	}

	if org != nil {
		if out.UBOs, err = s.ubos.ListByOrganization(ctx, org.ID); err != nil {
			return nil, errors.Wrap(err, "failed to load beneficial owners")
		}
		if out.Documents, err = s.docs.ListByOrganization(ctx, org.ID); err != nil {
			return nil, errors.Wrap(err, "failed to load documents")
		}
	}

	if out.FundVaults, err = s.vaults.ListActive(ctx); err != nil {
		// Vault listing is decorative on the dashboard; log and continue.
		s.logger.Warn("Failed to load fund vaults", map[string]interface{}{
			"error": err.Error(),
		})
		out.FundVaults = nil
	}

	return out, nil
}

// Status returns the claimant's status projection, serving from cache when a
// fresh entry exists.
func (s *Service) Status(ctx context.Context, claimantID uuid.UUID) (onboarding.StatusProjection, error) {
	key := cache.KYBStatusKey(claimantID)

	if s.cache != nil {
		var cached onboarding.StatusProjection
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Status cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	org, err := s.orgs.FindByUserID(ctx, claimantID)
	if err != nil && !errors.Is(err, errors.ErrOrganizationNotFound) {
		return onboarding.StatusProjection{}, errors.Wrap(err, "failed to load organization")
	}

	projection := onboarding.ProjectStatus(org)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, projection, s.statusTTL); err != nil {
			s.logger.Warn("Status cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return projection, nil
}

// InvalidateStatus drops the cached status projection for a claimant. Called
// after a submission so the next dashboard read reflects the reset status.
func (s *Service) InvalidateStatus(ctx context.Context, claimantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KYBStatusKey(claimantID)); err != nil {
		s.logger.Warn("Status cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
