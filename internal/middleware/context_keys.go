package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is private so values set here cannot collide with other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	ownerIDKey   = contextKey("ownerID")
)

// GetLoggerFromCtx returns the request-scoped logger, or slog.Default when none is set.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// WithOwnerID stores the authenticated tenant id in ctx.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// OwnerIDFromCtx returns the authenticated tenant id stored in ctx.
func OwnerIDFromCtx(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerIDKey).(string)
	return ownerID, ok && ownerID != ""
}

// GetOwnerIDFromContext retrieves the authenticated tenant id for a gin request.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(ownerIDKey)); exists {
		if ownerID, ok := v.(string); ok && ownerID != "" {
			return ownerID, true
		}
	}
	return OwnerIDFromCtx(c.Request.Context())
}
