package handler

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kyb/internal/dashboard"
	"kyb/internal/middleware"
	"kyb/internal/onboarding"
	"kyb/pkg/domain"
	kyberrors "kyb/pkg/errors"
	"kyb/pkg/logger"
	"kyb/pkg/validator"
)

// Mocks

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

type MockUBORepository struct {
	mock.Mock
}

func (m *MockUBORepository) ReplaceForOrganization(ctx context.Context, orgID uuid.UUID, ubos []domain.UBO) error {
	args := m.Called(ctx, orgID, ubos)
	return args.Error(0)
}

func (m *MockUBORepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.UBO, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UBO), args.Error(1)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *domain.KYBDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.KYBDocument, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KYBDocument), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, path, data, contentType)
	return args.Error(0)
}

func (m *MockBlobStore) PublicURL(bucket, path string) string {
	args := m.Called(bucket, path)
	return args.String(0)
}

// Helpers

func newSubmitHandler(orgRepo *MockOrganizationRepository, uboRepo *MockUBORepository, docRepo *MockDocumentRepository, blobs *MockBlobStore) *OnboardingHandler {
	svc := onboarding.NewService(orgRepo, uboRepo, docRepo, blobs, onboarding.Buckets{
		Logos:     "organization-logos",
		Documents: "kyb-documents",
	}, logger.NewNop())
	dash := dashboard.NewService(nil, nil, nil, nil, nil, 0, logger.NewNop())
	return NewOnboardingHandler(svc, dash, nil, validator.New(), logger.NewNop(), 1<<20)
}

func multipartSubmit(t *testing.T, claimantID uuid.UUID, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/v1/kyb/submit", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req.WithContext(middleware.WithClaimant(req.Context(), claimantID))
}

// Tests

func TestSubmitResubmissionKeepsStoredLogoURL(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	uboRepo := new(MockUBORepository)
	docRepo := new(MockDocumentRepository)
	blobs := new(MockBlobStore)

	claimantID := uuid.New()
	existing := &domain.Organization{
		ID:               uuid.New(),
		UserID:           claimantID,
		OrganizationName: "Relief Works",
		LogoURL:          "https://cdn.example.com/old-logo.png",
		KYBStatus:        domain.KYBStatusApproved,
	}

	orgRepo.On("FindByUserID", mock.Anything, claimantID).Return(existing, nil)
	orgRepo.On("Update", mock.Anything, mock.MatchedBy(func(org *domain.Organization) bool {
		// Posted fields overwrite; the stored logo URL survives untouched.
		return org.OrganizationName == "Relief Works International" &&
			org.LogoURL == "https://cdn.example.com/old-logo.png"
	})).Return(nil)

	h := newSubmitHandler(orgRepo, uboRepo, docRepo, blobs)

	req := multipartSubmit(t, claimantID, map[string]string{
		"organization_name": "Relief Works International",
	})
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://cdn.example.com/old-logo.png")

	orgRepo.AssertExpectations(t)
	blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitFirstTimeCreatesOrganization(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	uboRepo := new(MockUBORepository)
	docRepo := new(MockDocumentRepository)
	blobs := new(MockBlobStore)

	claimantID := uuid.New()
	orgRepo.On("FindByUserID", mock.Anything, claimantID).Return(nil, kyberrors.ErrOrganizationNotFound)
	orgRepo.On("Create", mock.Anything, mock.MatchedBy(func(org *domain.Organization) bool {
		return org.UserID == claimantID && org.OrganizationName == "Relief Works"
	})).Return(nil)

	h := newSubmitHandler(orgRepo, uboRepo, docRepo, blobs)

	req := multipartSubmit(t, claimantID, map[string]string{
		"organization_name": "Relief Works",
	})
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	orgRepo.AssertExpectations(t)
}

func TestSubmitUnknownFieldRejected(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	uboRepo := new(MockUBORepository)
	docRepo := new(MockDocumentRepository)
	blobs := new(MockBlobStore)

	claimantID := uuid.New()
	orgRepo.On("FindByUserID", mock.Anything, claimantID).Return(nil, kyberrors.ErrOrganizationNotFound)

	h := newSubmitHandler(orgRepo, uboRepo, docRepo, blobs)

	req := multipartSubmit(t, claimantID, map[string]string{
		"organization_name": "Relief Works",
		"favorite_color":    "green",
	})
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	orgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orgRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitProfileLoadFailure(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	uboRepo := new(MockUBORepository)
	docRepo := new(MockDocumentRepository)
	blobs := new(MockBlobStore)

	claimantID := uuid.New()
	orgRepo.On("FindByUserID", mock.Anything, claimantID).Return(nil, fmt.Errorf("connection refused"))

	h := newSubmitHandler(orgRepo, uboRepo, docRepo, blobs)

	req := multipartSubmit(t, claimantID, map[string]string{
		"organization_name": "Relief Works",
	})
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	orgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	h := newSubmitHandler(new(MockOrganizationRepository), new(MockUBORepository), new(MockDocumentRepository), new(MockBlobStore))

	req := httptest.NewRequest("POST", "/api/v1/kyb/submit", nil)
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
