package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kyb/pkg/domain"
	kyberrors "kyb/pkg/errors"
	"kyb/pkg/logger"
)

// Mocks

type MockOrganizationReader struct {
	mock.Mock
}

func (m *MockOrganizationReader) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

type MockUBOReader struct {
	mock.Mock
}

func (m *MockUBOReader) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.UBO, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UBO), args.Error(1)
}

type MockDocumentReader struct {
	mock.Mock
}

func (m *MockDocumentReader) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.KYBDocument, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KYBDocument), args.Error(1)
}

type MockFundVaultReader struct {
	mock.Mock
}

func (m *MockFundVaultReader) ListActive(ctx context.Context) ([]domain.FundVault, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundVault), args.Error(1)
}

// Tests

func TestOverviewWithOrganization(t *testing.T) {
	orgs := new(MockOrganizationReader)
	ubos := new(MockUBOReader)
	docs := new(MockDocumentReader)
	vaults := new(MockFundVaultReader)

	claimantID := uuid.New()
	orgID := uuid.New()
	org := &domain.Organization{
		ID:               orgID,
		UserID:           claimantID,
		OrganizationName: "Relief Works",
		KYBStatus:        domain.KYBStatusApproved,
		RiskRating:       domain.RiskRatingLow,
	}

	orgs.On("FindByUserID", mock.Anything, claimantID).Return(org, nil)
	ubos.On("ListByOrganization", mock.Anything, orgID).Return([]domain.UBO{{FirstName: "Amina"}}, nil)
	docs.On("ListByOrganization", mock.Anything, orgID).Return([]domain.KYBDocument{
		{DocumentType: domain.DocumentTypeBankStatement},
	}, nil)
	vaults.On("ListActive", mock.Anything).Return([]domain.FundVault{
		{Name: "Emergency Relief", TargetAmount: decimal.NewFromInt(100000)},
	}, nil)

	service := NewService(orgs, ubos, docs, vaults, nil, 0, logger.NewNop())

	overview, err := service.Overview(context.Background(), claimantID)
	require.NoError(t, err)

	assert.Equal(t, "Relief Works", overview.Organization.OrganizationName)
	assert.Equal(t, "APPROVED", overview.Status.Status.Label)
	assert.Equal(t, "badge-green", overview.Status.Status.Class)
	assert.Len(t, overview.UBOs, 1)
	assert.Len(t, overview.Documents, 1)
	assert.Len(t, overview.FundVaults, 1)
}

func TestOverviewWithoutOrganization(t *testing.T) {
	orgs := new(MockOrganizationReader)
	ubos := new(MockUBOReader)
	docs := new(MockDocumentReader)
	vaults := new(MockFundVaultReader)

	claimantID := uuid.New()

	orgs.On("FindByUserID", mock.Anything, claimantID).Return(nil, kyberrors.ErrOrganizationNotFound)
	vaults.On("ListActive", mock.Anything).Return([]domain.FundVault{}, nil)

	service := NewService(orgs, ubos, docs, vaults, nil, 0, logger.NewNop())

	overview, err := service.Overview(context.Background(), claimantID)
	require.NoError(t, err)

	assert.Nil(t, overview.Organization)
	assert.Equal(t, "UNKNOWN", overview.Status.Status.Label)
	assert.Equal(t, "badge-gray", overview.Status.Status.Class)

	ubos.AssertNotCalled(t, "ListByOrganization", mock.Anything, mock.Anything)
	docs.AssertNotCalled(t, "ListByOrganization", mock.Anything, mock.Anything)
}

func TestOverviewVaultFailureIsNotFatal(t *testing.T) {
	orgs := new(MockOrganizationReader)
	ubos := new(MockUBOReader)
	docs := new(MockDocumentReader)
	vaults := new(MockFundVaultReader)

	claimantID := uuid.New()

	orgs.On("FindByUserID", mock.Anything, claimantID).Return(nil, kyberrors.ErrOrganizationNotFound)
	vaults.On("ListActive", mock.Anything).Return(nil, fmt.Errorf("table missing"))

	service := NewService(orgs, ubos, docs, vaults, nil, 0, logger.NewNop())

	overview, err := service.Overview(context.Background(), claimantID)
	require.NoError(t, err)
	assert.Empty(t, overview.FundVaults)
}

func TestOverviewDatabaseFailure(t *testing.T) {
	orgs := new(MockOrganizationReader)
	ubos := new(MockUBOReader)
	docs := new(MockDocumentReader)
	vaults := new(MockFundVaultReader)

	claimantID := uuid.New()

	orgs.On("FindByUserID", mock.Anything, claimantID).Return(nil, fmt.Errorf("connection refused"))

	service := NewService(orgs, ubos, docs, vaults, nil, 0, logger.NewNop())

	_, err := service.Overview(context.Background(), claimantID)
	assert.Error(t, err)
}

func TestStatusWithoutCache(t *testing.T) {
	orgs := new(MockOrganizationReader)
	ubos := new(MockUBOReader)
	docs := new(MockDocumentReader)
	vaults := new(MockFundVaultReader)

	claimantID := uuid.New()
	org := &domain.Organization{
		UserID:     claimantID,
		KYBStatus:  domain.KYBStatusInReview,
		RiskRating: domain.RiskRatingMedium,
	}

	orgs.On("FindByUserID", mock.Anything, claimantID).Return(org, nil)

	service := NewService(orgs, ubos, docs, vaults, nil, 0, logger.NewNop())

	projection, err := service.Status(context.Background(), claimantID)
	require.NoError(t, err)
	assert.Equal(t, "IN REVIEW", projection.Status.Label)
	assert.Equal(t, "badge-blue", projection.Status.Class)
	assert.Equal(t, "MEDIUM", projection.Risk.Label)
}

func TestStatusUnknownClaimant(t *testing.T) {
	orgs := new(MockOrganizationReader)
	ubos := new(MockUBOReader)
	docs := new(MockDocumentReader)
	vaults := new(MockFundVaultReader)

	claimantID := uuid.New()
	orgs.On("FindByUserID", mock.Anything, claimantID).Return(nil, kyberrors.ErrOrganizationNotFound)

	service := NewService(orgs, ubos, docs, vaults, nil, 0, logger.NewNop())

	projection, err := service.Status(context.Background(), claimantID)
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", projection.Status.Label)
}
