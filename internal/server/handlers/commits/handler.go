package commits

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/remote"
	"github.com/apiarycd/svncommit/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	executor *commit.Executor
	tokens   *auth.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(executor *commit.Executor, tokens *auth.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		executor: executor,
		tokens:   tokens,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/commits")

	r.Use(h.tokens.Middleware(auth.RolePublisher))
	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
}

//	@Summary		Commit a working copy
//	@Description	Commit one location of a workspace owned by this worker
//	@Tags			commits
//	@Accept			json
//	@Produce		json
//	@Param			request	body		remote.Request	true	"Commit task"
//	@Success		200		{object}	remote.Reply
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		401		{object}	fiberfx.ErrorResponse
//	@Router			/commits [post]
//
// Commit a working copy.
func (h *Handler) post(c *fiber.Ctx, req *remote.Request) error {
	if !filepath.IsAbs(req.Root) {
		return fiber.NewError(fiber.StatusBadRequest, "workspace root must be absolute")
	}

	h.logger.Info("commit requested",
		zap.String("request_id", c.Get("X-Request-ID")),
		zap.String("root", req.Root),
		zap.Stringer("location", req.Task.Location))

	var sink bytes.Buffer
	outcome, err := h.executor.Execute(c.UserContext(), req.Root, req.Task, &sink)
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, fmt.Sprintf("commit interrupted: %v", err))
	}

	return c.JSON(remote.Reply{
		Outcome: outcome,
		Log:     strings.Split(strings.TrimSuffix(sink.String(), "\n"), "\n"),
	})
}
