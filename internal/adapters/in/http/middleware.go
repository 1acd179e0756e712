package http

import (
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	headerActorRole = "X-Actor-Role"
	loggerKey       = "logger"
)

// RequestLogger logs one line per request and stores a request-scoped
// entry for the handlers.
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			req := ctx.Request()

			entry := logger.WithFields(logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
			})
			ctx.Set(loggerKey, entry)

			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			fields := logrus.Fields{
				"status":  ctx.Response().Status,
				"latency": time.Since(start).String(),
			}
			if role := req.Header.Get(headerActorRole); role != "" {
				fields["actor_role"] = role
			}

			if ctx.Response().Status >= 500 {
				entry.WithFields(fields).Warn("request served")
			} else {
				entry.WithFields(fields).Info("request served")
			}
			return nil
		}
	}
}

func loggerFrom(ctx echo.Context) logrus.FieldLogger {
	if entry, ok := ctx.Get(loggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.StandardLogger()
}

// actorRole reads the role of the caller. Role-dependent operations have no
// default.
func actorRole(ctx echo.Context) (kernel.Role, error) {
	raw := strings.TrimSpace(ctx.Request().Header.Get(headerActorRole))
	if raw == "" {
		return "", errs.NewValueIsRequiredError(headerActorRole)
	}
	return kernel.ParseRole(raw)
}
