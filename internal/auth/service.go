// Package auth issues and verifies the tokens that gate access to the
// onboarding and dashboard surfaces.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kyb/pkg/errors"
	"kyb/pkg/logger"
)

// Token types accepted by VerifyConfirmToken. They mirror the link kinds
// sent out by the mailer: a first-time signup confirmation, a magic login
// link, and a generic email confirmation.
const (
	TokenTypeSignup  = "signup"
	TokenTypeMagic   = "magiclink"
	TokenTypeConfirm = "email"
)

// Session describes an authenticated claimant.
type Session struct {
	ClaimantID uuid.UUID
	Email      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Service signs and parses session and one-time confirmation tokens.
type Service struct {
	secret     []byte
	expiration time.Duration
	logger     logger.Logger
	now        func() time.Time
}

// NewService constructs a token service around an HMAC secret.
func NewService(secret string, expiration time.Duration, log logger.Logger) *Service {
	return &Service{
		secret:     []byte(secret),
		expiration: expiration,
		logger:     log,
		now:        time.Now,
	}
}

// IssueSession mints a session token for a claimant.
func (s *Service) IssueSession(claimantID uuid.UUID, email string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   claimantID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}
	return signed, nil
}

// ParseSession validates a session token and returns the claimant it names.
func (s *Service) ParseSession(tokenString string) (*Session, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.ErrInvalidToken
	}
	claimantID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	session := &Session{ClaimantID: claimantID}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}
	if iat, ok := claims["iat"].(float64); ok {
		session.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := claims["exp"].(float64); ok {
		session.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return session, nil
}

// IssueConfirmToken mints a one-time confirmation token of the given type,
// typically embedded in an emailed link.
func (s *Service) IssueConfirmToken(claimantID uuid.UUID, email, tokenType string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   claimantID.String(),
		"email": email,
		"type":  tokenType,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign confirm token")
	}
	return signed, nil
}

// VerifyConfirmToken validates a one-time token and checks its recorded type
// against the type the caller expects. On success it returns a full session for
// the claimant so the confirmation flow can log them straight in.
func (s *Service) VerifyConfirmToken(tokenString, expectedType string) (*Session, error) {
	if expectedType != TokenTypeSignup && expectedType != TokenTypeMagic && expectedType != TokenTypeConfirm {
		return nil, errors.ErrInvalidToken
	}

	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != expectedType {
		s.logger.Warn("Confirm token type mismatch", map[string]interface{}{
			"expected": expectedType,
		})
		return nil, errors.ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.ErrInvalidToken
	}
	claimantID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	session := &Session{ClaimantID: claimantID}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}
	return session, nil
}

func (s *Service) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return nil, errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}
