package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// ProfileLookup is the slice of the profile service the subscription gate needs.
type ProfileLookup interface {
	GetProfile(ctx context.Context, ownerID string) (*domain.Profile, error)
}

// SubscriptionGate refuses mutating requests with 402 once the tenant's
// subscription has lapsed. Reads always pass so data stays reachable.
func SubscriptionGate(profiles ProfileLookup, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		ownerID, ok := GetOwnerIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), ownerID)
		if err != nil {
			logger.Error("Failed to load profile for subscription check", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify subscription"})
			return
		}

		if profile.SubscriptionLapsed(now()) {
			logger.Warn("Write refused, subscription lapsed", slog.String("subscription_status", string(profile.Subscription())))
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": "Subscription expired. Renew to make changes."})
			return
		}

		c.Next()
	}
}
