package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyb/pkg/errors"
	"kyb/pkg/logger"
)

func newTestService(expiration time.Duration) *Service {
	return NewService("test-secret", expiration, logger.NewNop())
}

func TestSessionRoundTrip(t *testing.T) {
	service := newTestService(time.Hour)
	claimantID := uuid.New()

	token, err := service.IssueSession(claimantID, "amina@reliefworks.org")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := service.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, claimantID, session.ClaimantID)
	assert.Equal(t, "amina@reliefworks.org", session.Email)
	assert.True(t, session.ExpiresAt.After(session.IssuedAt))
}

func TestParseSessionRejectsTamperedToken(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.IssueSession(uuid.New(), "a@b.org")
	require.NoError(t, err)

	_, err = service.ParseSession(token + "x")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)

	_, err = service.ParseSession("not-a-jwt")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestParseSessionRejectsWrongSecret(t *testing.T) {
	issuer := newTestService(time.Hour)
	verifier := NewService("other-secret", time.Hour, logger.NewNop())

	token, err := issuer.IssueSession(uuid.New(), "a@b.org")
	require.NoError(t, err)

	_, err = verifier.ParseSession(token)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestParseSessionRejectsExpiredToken(t *testing.T) {
	service := newTestService(time.Hour)

	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.IssueSession(uuid.New(), "a@b.org")
	require.NoError(t, err)

	// Move past expiry.
	service.now = func() time.Time { return issued.Add(2 * time.Hour) }

	_, err = service.ParseSession(token)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestConfirmTokenRoundTrip(t *testing.T) {
	service := newTestService(time.Hour)
	claimantID := uuid.New()

	token, err := service.IssueConfirmToken(claimantID, "amina@reliefworks.org", TokenTypeSignup)
	require.NoError(t, err)

	session, err := service.VerifyConfirmToken(token, TokenTypeSignup)
	require.NoError(t, err)
	assert.Equal(t, claimantID, session.ClaimantID)
	assert.Equal(t, "amina@reliefworks.org", session.Email)
}

func TestConfirmTokenTypeMismatch(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.IssueConfirmToken(uuid.New(), "a@b.org", TokenTypeSignup)
	require.NoError(t, err)

	_, err = service.VerifyConfirmToken(token, TokenTypeMagic)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestConfirmTokenUnknownExpectedType(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.IssueConfirmToken(uuid.New(), "a@b.org", TokenTypeSignup)
	require.NoError(t, err)

	_, err = service.VerifyConfirmToken(token, "password_reset")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestSessionTokenIsNotAConfirmToken(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.IssueSession(uuid.New(), "a@b.org")
	require.NoError(t, err)

	// Session tokens carry no type claim and never pass confirmation.
	_, err = service.VerifyConfirmToken(token, TokenTypeSignup)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}
