package auth

import (
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const claimsKey = "auth.claims"

// Middleware requires a valid bearer token when authentication is enabled.
func (s *Service) Middleware(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.Enabled() {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, ErrTokenMissing.Error())
		}

		claims, err := s.Validate(token)
		if err != nil {
			s.logger.Warn("rejected token", zap.String("path", c.Path()), zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, ErrTokenInvalid.Error())
		}

		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			return fiber.NewError(fiber.StatusForbidden, "role "+string(claims.Role)+" not allowed")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	if !ok {
		return nil, errors.New("no claims in request")
	}
	return claims, nil
}
