package middleware

import (
	"net/http"
	"strings"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1/"

var writeVerbs = map[string]string{
	http.MethodPost:   "created",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// PosthogMiddleware records one analytics event per successful write by a
// tenant. Reads are not tracked and record ids never leave the process.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() {
			return
		}
		verb, isWrite := writeVerbs[c.Request.Method]
		if !isWrite || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		ownerID, ok := GetOwnerIDFromContext(c)
		if !ok {
			return
		}
		eventName := AnalyticsEventName(c.FullPath(), verb)
		if eventName == "" {
			return
		}

		posthogClient.Enqueue(ownerID, eventName, map[string]any{
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		})
	}
}

// AnalyticsEventName turns a route template into an event name, dropping path
// parameters: "/api/v1/members/:id/invoices" with "created" gives
// "members_invoices_created". Routes outside the API yield "".
func AnalyticsEventName(route, verb string) string {
	if !strings.HasPrefix(route, apiPrefix) {
		return ""
	}
	var parts []string
	for _, seg := range strings.Split(strings.TrimPrefix(route, apiPrefix), "/") {
		if seg == "" || strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(append(parts, verb), "_")
}
