package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	commitsPath     = "/api/v1/commits"
	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 10 * time.Minute
)

// HTTPChannel posts tasks to a worker's commit endpoint.
type HTTPChannel struct {
	config Config

	tokens *auth.Service
	logger *zap.Logger
}

func NewHTTPChannel(config Config, tokens *auth.Service, logger *zap.Logger) *HTTPChannel {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	config.URL = strings.TrimRight(config.URL, "/")

	return &HTTPChannel{
		config: config,

		tokens: tokens,
		logger: logger,
	}
}

// Act implements Channel.
func (c *HTTPChannel) Act(ctx context.Context, root string, task commit.Task, sink io.Writer) (commit.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return commit.Outcome{}, err
	}

	timeout := c.config.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	requestID := uuid.NewString()
	agent := fiber.Post(c.config.URL+commitsPath).
		JSON(Request{Root: root, Task: task}).
		Set(requestIDHeader, requestID).
		Timeout(timeout)

	if c.tokens != nil && c.tokens.Enabled() {
		token, err := c.tokens.Issue("publisher", auth.RolePublisher)
		if err != nil {
			return commit.Outcome{}, fmt.Errorf("%w: %w", ErrChannel, err)
		}
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	c.logger.Debug("dispatching commit",
		zap.String("worker", c.config.URL),
		zap.String("request_id", requestID),
		zap.Stringer("location", task.Location))

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return commit.Outcome{}, fmt.Errorf("%w: %w", ErrChannel, multierr.Combine(errs...))
	}
	if code != fiber.StatusOK {
		return commit.Outcome{}, fmt.Errorf("%w: status %d: %s", ErrWorkerRefused, code, strings.TrimSpace(string(body)))
	}

	var reply Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return commit.Outcome{}, fmt.Errorf("%w: invalid reply: %w", ErrChannel, err)
	}

	for _, line := range reply.Log {
		if _, err := fmt.Fprintln(sink, line); err != nil {
			return commit.Outcome{}, fmt.Errorf("failed to write build log: %w", err)
		}
	}

	return reply.Outcome, nil
}

var _ Channel = (*HTTPChannel)(nil)
