// ==============================================================================
// SUBMISSION ORCHESTRATOR - internal/onboarding/service.go
// ==============================================================================
// Performs the ordered multi-resource write on final confirmation: logo
// upload, organization upsert, UBO replacement, per-document upload and
// metadata insert. Gating steps abort; independent steps accumulate failures.
// ==============================================================================

package onboarding

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"kyb/pkg/domain"
	kyberrors "kyb/pkg/errors"
	"kyb/pkg/logger"

	"github.com/google/uuid"
)

// ==============================================================================
// COLLABORATOR INTERFACES
// ==============================================================================

// OrganizationRepository persists organization profiles, unique per claimant.
type OrganizationRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Organization, error)
	Create(ctx context.Context, org *domain.Organization) error
	Update(ctx context.Context, org *domain.Organization) error
}

// UBORepository persists UBO rows owned by an organization.
type UBORepository interface {
	// ReplaceForOrganization swaps the full UBO set for the organization.
	ReplaceForOrganization(ctx context.Context, orgID uuid.UUID, ubos []domain.UBO) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.UBO, error)
}

// DocumentRepository persists KYB document metadata, append-only.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.KYBDocument) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.KYBDocument, error)
}

// BlobStore is the object storage contract the orchestrator writes files to.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	PublicURL(bucket, path string) string
}

// ==============================================================================
// SERVICE
// ==============================================================================

// Buckets names the two blob store buckets the workflow writes to.
type Buckets struct {
	Logos     string
	Documents string
}

// Service coordinates draft submission against the relational and blob stores.
type Service struct {
	orgRepo    OrganizationRepository
	uboRepo    UBORepository
	docRepo    DocumentRepository
	blobs      BlobStore
	buckets    Buckets
	logger     logger.Logger
	uboSumRule bool
	now        func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithUBOSumRule enables the stricter validation that declared ownership
// stakes must sum to at most 100%.
func WithUBOSumRule() ServiceOption {
	return func(s *Service) { s.uboSumRule = true }
}

// WithClock overrides the timestamp source. Used by tests to get stable
// storage paths.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates the submission orchestrator with its collaborators.
func NewService(
	orgRepo OrganizationRepository,
	uboRepo UBORepository,
	docRepo DocumentRepository,
	blobs BlobStore,
	buckets Buckets,
	log logger.Logger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		orgRepo: orgRepo,
		uboRepo: uboRepo,
		docRepo: docRepo,
		blobs:   blobs,
		buckets: buckets,
		logger:  log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitResult reports the outcome of a submission that was not aborted.
// PartialFailures carries every non-gating failure that occurred; an empty
// slice means a fully clean submission.
type SubmitResult struct {
	OrganizationID  uuid.UUID     `json:"organization_id"`
	LogoURL         string        `json:"logo_url,omitempty"`
	UBOCount        int           `json:"ubo_count"`
	DocumentsStored int           `json:"documents_stored"`
	PartialFailures []StepFailure `json:"partial_failures,omitempty"`
}

// Stage names used in errors and logs.
const (
	stageValidate  = "validate"
	stageLogo      = "logo_upload"
	stageProfile   = "profile_upsert"
	stageUBOs      = "ubo_replace"
	stageDocuments = "document_store"
)

// DraftFor builds the draft for claimantID, pre-populated from the persisted
// profile when one exists. Stored values the client does not re-post, like a
// previously uploaded logo URL, survive re-submission this way.
func (s *Service) DraftFor(ctx context.Context, claimantID uuid.UUID) (*Draft, error) {
	existing, err := s.orgRepo.FindByUserID(ctx, claimantID)
	if err != nil {
		if kyberrors.Is(err, kyberrors.ErrOrganizationNotFound) {
			return NewDraft(nil), nil
		}
		return nil, kyberrors.Wrap(err, "failed to load existing profile")
	}
	return NewDraft(existing), nil
}

// Submit runs the ordered multi-resource write for the draft on behalf of
// claimantID. Field data is never mutated, so an aborted submission can be
// retried without re-entering anything; the abort reason is recorded on
// draft.LastError and cleared once a submission goes through. Steps:
//
//  1. logo upload (gating)
//  2. organization upsert, status reset to pending (gating)
//  3. UBO set replacement (failure recorded, not rolled back)
//  4. per-document upload + metadata insert (independent, concurrent,
//     all awaited, failures accumulated)
func (s *Service) Submit(ctx context.Context, draft *Draft, claimantID uuid.UUID) (*SubmitResult, error) {
	start := s.now()

	abort := func(subErr *SubmissionError) (*SubmitResult, error) {
		draft.LastError = subErr.Message
		return nil, subErr
	}

	// Required-field check; the one recoverable pre-write failure.
	if violations := Validate(draft, StepReview); len(violations) > 0 {
		return abort(&SubmissionError{
			Kind:    KindValidation,
			Stage:   stageValidate,
			Message: violations[0].Message,
		})
	}
	if s.uboSumRule {
		if violations := ValidateUBOSum(draft); len(violations) > 0 {
			return abort(&SubmissionError{
				Kind:    KindValidation,
				Stage:   stageValidate,
				Message: violations[0].Message,
			})
		}
	}

	// Step 1: logo upload gates everything after it.
	logoURL := draft.Profile.LogoURL
	if draft.Logo != nil {
		url, err := s.uploadLogo(ctx, draft.Logo, claimantID)
		if err != nil {
			return abort(&SubmissionError{
				Kind:    KindSubmissionAborted,
				Stage:   stageLogo,
				Message: "logo upload failed",
				Err:     err,
			})
		}
		logoURL = url
	}

	// Step 2: build and upsert the organization profile. Submission always
	// resets status to pending, even when re-editing an approved profile.
	org := draft.Profile
	org.UserID = claimantID
	org.LogoURL = logoURL
	org.KYBStatus = domain.KYBStatusPending

	orgID, err := s.upsertOrganization(ctx, &org, claimantID)
	if err != nil {
		return abort(&SubmissionError{
			Kind:    KindSubmissionAborted,
			Stage:   stageProfile,
			Message: "organization upsert failed",
			Err:     err,
		})
	}
	draft.LastError = ""

	result := &SubmitResult{
		OrganizationID: orgID,
		LogoURL:        logoURL,
		UBOCount:       len(draft.UBOs),
	}

	// Step 3: UBO replacement. The profile upsert already committed, so a
	// failure here is surfaced without rolling anything back.
	if len(draft.UBOs) > 0 {
		if err := s.replaceUBOs(ctx, draft.UBOs, orgID); err != nil {
			result.PartialFailures = append(result.PartialFailures, StepFailure{
				Stage:   stageUBOs,
				Kind:    KindPersistence,
				Err:     err,
				Message: err.Error(),
			})
			s.logger.Error("UBO replacement failed", map[string]interface{}{
				"organization_id": orgID.String(),
				"user_id":         claimantID.String(),
				"error":           err.Error(),
			})
		}
	}

	// Step 4: documents are independent of one another; store them
	// concurrently and await every outcome before reporting success.
	stored, failures := s.storeDocuments(ctx, draft.Documents, claimantID, orgID)
	result.DocumentsStored = stored
	result.PartialFailures = append(result.PartialFailures, failures...)

	s.logger.Info("KYB submission completed", map[string]interface{}{
		"organization_id":  orgID.String(),
		"user_id":          claimantID.String(),
		"ubo_count":        len(draft.UBOs),
		"documents_stored": stored,
		"partial_failures": len(result.PartialFailures),
		"duration_ms":      s.now().Sub(start).Milliseconds(),
	})

	return result, nil
}

// uploadLogo writes the pending logo to the logo bucket at a path keyed by
// claimant and timestamp, and resolves its public reference.
func (s *Service) uploadLogo(ctx context.Context, logo *FileHandle, claimantID uuid.UUID) (string, error) {
	path := fmt.Sprintf("%s/logo-%d%s",
		claimantID.String(), s.now().UnixMilli(), filepath.Ext(logo.Name))

	if err := s.blobs.Upload(ctx, s.buckets.Logos, path, logo.Data, logo.MimeType); err != nil {
		return "", err
	}
	return s.blobs.PublicURL(s.buckets.Logos, path), nil
}

// upsertOrganization updates the claimant's existing profile or inserts a
// new one, returning the resolved organization identity.
func (s *Service) upsertOrganization(ctx context.Context, org *domain.Organization, claimantID uuid.UUID) (uuid.UUID, error) {
	existing, err := s.orgRepo.FindByUserID(ctx, claimantID)
	if err != nil && !kyberrors.Is(err, kyberrors.ErrOrganizationNotFound) {
		return uuid.Nil, err
	}
	if existing != nil {
		org.ID = existing.ID
		org.CreatedAt = existing.CreatedAt
		if err := s.orgRepo.Update(ctx, org); err != nil {
			return uuid.Nil, err
		}
		return existing.ID, nil
	}

	org.ID = uuid.New()
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return uuid.Nil, err
	}
	return org.ID, nil
}

func (s *Service) replaceUBOs(ctx context.Context, forms []UBOForm, orgID uuid.UUID) error {
	now := s.now()
	ubos := make([]domain.UBO, 0, len(forms))
	for _, f := range forms {
		ubos = append(ubos, domain.UBO{
			ID:                  uuid.New(),
			OrganizationID:      orgID,
			FirstName:           f.FirstName,
			LastName:            f.LastName,
			PositionTitle:       f.PositionTitle,
			OwnershipPercentage: f.OwnershipPercentage,
			CreatedAt:           now,
		})
	}
	return s.uboRepo.ReplaceForOrganization(ctx, orgID, ubos)
}

// storeDocuments uploads every pending document and inserts its metadata
// row. Each document is independent: one failure never blocks the others,
// but every failure is tracked and reported.
func (s *Service) storeDocuments(
	ctx context.Context,
	documents map[domain.DocumentType]*FileHandle,
	claimantID, orgID uuid.UUID,
) (int, []StepFailure) {
	if len(documents) == 0 {
		return 0, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		stored   int
		failures []StepFailure
	)

	ts := s.now().UnixMilli()
	for docType, file := range documents {
		wg.Add(1)
		go func(docType domain.DocumentType, file *FileHandle) {
			defer wg.Done()

			fail := func(kind ErrorKind, err error) {
				mu.Lock()
				failures = append(failures, StepFailure{
					Stage:        stageDocuments,
					DocumentType: docType,
					Kind:         kind,
					Err:          err,
					Message:      err.Error(),
				})
				mu.Unlock()
				s.logger.Error("KYB document store failed", map[string]interface{}{
					"organization_id": orgID.String(),
					"document_type":   string(docType),
					"error":           err.Error(),
				})
			}

			path := fmt.Sprintf("%s/documents/%s-%d%s",
				claimantID.String(), docType, ts, filepath.Ext(file.Name))

			if err := s.blobs.Upload(ctx, s.buckets.Documents, path, file.Data, file.MimeType); err != nil {
				fail(KindUpload, err)
				return
			}

			doc := &domain.KYBDocument{
				ID:             uuid.New(),
				OrganizationID: orgID,
				DocumentType:   docType,
				DocumentName:   file.Name,
				FilePath:       path,
				FileSize:       file.Size,
				MimeType:       file.MimeType,
				CreatedAt:      s.now(),
			}
			if err := s.docRepo.Create(ctx, doc); err != nil {
				fail(KindPersistence, err)
				return
			}

			mu.Lock()
			stored++
			mu.Unlock()
		}(docType, file)
	}

	wg.Wait()
	return stored, failures
}
