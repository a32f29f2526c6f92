package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const defaultTokenExp = 5 * time.Minute

// Service issues and validates worker tokens.
type Service struct {
	config Config

	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	if config.TokenExp <= 0 {
		config.TokenExp = defaultTokenExp
	}

	return &Service{
		config: config,

		logger: logger,
	}
}

// Enabled reports whether a secret key is configured.
func (s *Service) Enabled() bool {
	return len(s.config.SecretKey) > 0
}

// Issue generates a signed token for subject.
func (s *Service) Issue(subject string, role Role) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}

	claims := NewClaims(s.config.Issuer, subject, role, time.Now().Add(s.config.TokenExp))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate validates a token and returns its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.config.SecretKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
