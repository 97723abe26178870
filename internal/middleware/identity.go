package middleware

import "github.com/labstack/echo/v4"

// Context keys written by JWTAuth and read by RequireRole, the rate
// limiter and the handlers.
const (
	CtxSubject = "user_id"
	CtxRole    = "role"
)

// currentUserID returns the authenticated subject, or "" for anonymous
// requests.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get(CtxSubject).(string); ok {
		return s
	}
	return ""
}
