package comments

import (
	"errors"

	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/apiarycd/svncommit/internal/comment"
	"github.com/apiarycd/svncommit/internal/messages"
	"github.com/apiarycd/svncommit/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckQuery is the query of a template check.
type CheckQuery struct {
	Value string `query:"value"`
}

// CheckResponse reports a well-formed template and its rendering against an
// empty environment.
type CheckResponse struct {
	Status  string `json:"status"`
	Preview string `json:"preview"`
}

type Handler struct {
	tokens     *auth.Service
	properties comment.PropertySource

	validator *validator.Validate
}

func NewHandler(tokens *auth.Service, properties comment.PropertySource, validator *validator.Validate) handler.Handler {
	return &Handler{
		tokens:     tokens,
		properties: properties,

		validator: validator,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/comments")

	r.Use(h.tokens.Middleware())
	r.Get("/check", validation.DecorateWithQueryEx(h.validator, h.check))
}

//	@Summary		Check a comment template
//	@Tags			comments
//	@Produce		json
//	@Param			value	query		string	false	"Template"
//	@Success		200		{object}	CheckResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Router			/comments/check [get]
//
// Check a comment template.
func (h *Handler) check(c *fiber.Ctx, q *CheckQuery) error {
	preview, err := comment.Evaluate(nil, h.properties(), q.Value)
	if err != nil {
		var cerr *comment.CompilationError
		if errors.As(err, &cerr) {
			return fiber.NewError(fiber.StatusBadRequest, messages.BadTemplate(cerr.Error()))
		}
		return err
	}

	return c.JSON(CheckResponse{Status: "ok", Preview: preview})
}
