package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventSink receives product analytics events. utils.PosthogClientWrapper is the PostHog sink.
type EventSink interface {
	IsInitialized() bool
	Enqueue(distinctID, event string, properties map[string]any)
}

// ledgerEvents names the write routes by their route template.
var ledgerEvents = map[string]string{
	"POST /api/v1/workspaces":                           "workspace_created",
	"PUT /api/v1/workspaces/:workspaceID":               "workspace_updated",
	"DELETE /api/v1/workspaces/:workspaceID":            "workspace_deleted",
	"POST /api/v1/workspaces/:workspaceID/members":      "member_invited",
	"DELETE /api/v1/workspaces/:workspaceID/members":    "member_removed",
	"POST /api/v1/workspaces/:workspaceID/transactions": "transaction_added",
	"PUT /api/v1/transactions/:transactionID":           "transaction_edited",
	"DELETE /api/v1/transactions/:transactionID":        "transaction_deleted",
	"POST /api/v1/workspaces/:workspaceID/advice":       "advice_requested",
	"PUT /api/v1/users/me/theme":                        "theme_changed",
	"DELETE /api/v1/users/:userID":                      "user_deleted",
	"POST /api/v1/admin/users":                          "admin_user_created",
	"POST /api/v1/admin/users/:userID/password":         "admin_password_reset",
}

// trackedParams are the route parameters copied onto events.
var trackedParams = map[string]string{
	"workspaceID":   "workspace_id",
	"transactionID": "transaction_id",
	"userID":        "target_user_id",
}

// eventName returns the ledger event for the route, or a name derived from the
// route template for unlisted writes. Reads are not tracked.
func eventName(method, route string) string {
	if name, ok := ledgerEvents[method+" "+route]; ok {
		return name
	}
	if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
		return ""
	}
	// "/api/v1/users/:userID" -> "put_api_v1_users_userID"
	slug := strings.NewReplacer("/", "_", ":", "").Replace(strings.TrimPrefix(route, "/"))
	if slug == "" {
		return ""
	}
	return strings.ToLower(method) + "_" + slug
}

// PosthogMiddleware reports successful authenticated writes to sink, keyed by the
// caller's user ID.
func PosthogMiddleware(sink EventSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sink == nil || !sink.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		event := eventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}

		props := map[string]any{
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		for _, p := range c.Params {
			if key, ok := trackedParams[p.Key]; ok {
				props[key] = p.Value
			}
		}
		if email, ok := GetUserEmailFromContext(c); ok {
			props["$set"] = map[string]any{"email": email}
		}
		sink.Enqueue(userID, event, props)
	}
}
