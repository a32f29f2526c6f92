package credentials

import (
	"errors"
	"fmt"

	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	credentialsSvc *credentials.Service
	tokens         *auth.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	credentialsSvc *credentials.Service,
	tokens *auth.Service,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		credentialsSvc: credentialsSvc,
		tokens:         tokens,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/credentials")

	r.Use(h.tokens.Middleware(auth.RoleOperator))
	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Put("/", validation.DecorateWithBodyEx(h.validator, h.put))
	r.Delete("/", validation.DecorateWithQueryEx(h.validator, h.delete))
}

//	@Summary		List credentials
//	@Description	List stored credentials without secrets
//	@Tags			credentials
//	@Produce		json
//	@Success		200	{array}	EntryResponse
//	@Router			/credentials [get]
//
// List credentials.
func (h *Handler) list(c *fiber.Ctx) error {
	entries, err := h.credentialsSvc.List(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list credentials: %w", err)
	}

	return c.JSON(lo.Map(entries, func(e credentials.Entry, _ int) EntryResponse {
		return EntryResponse{
			Project:        e.Project,
			URLPrefix:      e.URLPrefix,
			Username:       e.Credentials.Username,
			PrivateKeyPath: e.Credentials.PrivateKeyPath,
		}
	}))
}

//	@Summary		Store credentials
//	@Tags			credentials
//	@Accept			json
//	@Param			entry	body	PUTRequest	true	"Credentials entry"
//	@Success		204
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Router			/credentials [put]
//
// Store credentials.
func (h *Handler) put(c *fiber.Ctx, req *PUTRequest) error {
	entry := credentials.Entry{
		Project:   req.Project,
		URLPrefix: req.URLPrefix,
		Credentials: credentials.Credentials{
			Username:       req.Username,
			Password:       req.Password,
			PrivateKeyPath: req.PrivateKeyPath,
			Passphrase:     req.Passphrase,
		},
	}

	if err := h.credentialsSvc.Set(c.Context(), entry); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Delete credentials
//	@Tags			credentials
//	@Param			project		query	string	false	"Project"
//	@Param			url_prefix	query	string	true	"URL prefix"
//	@Success		204
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/credentials [delete]
//
// Delete credentials.
func (h *Handler) delete(c *fiber.Ctx, q *DeleteQuery) error {
	if err := h.credentialsSvc.Delete(c.Context(), q.Project, q.URLPrefix); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, credentials.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, credentials.ErrInvalidEntry):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
