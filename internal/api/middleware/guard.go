package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// RequestedPathHeader carries the UI destination a data request is made for.
// It becomes the return-to path of a redirect decision.
const RequestedPathHeader = "X-Requested-Path"

// Guarder decides whether the current session may reach a destination.
type Guarder interface {
	Guard(path string) domain.Decision
}

// Guard runs the route guard in front of session-bound endpoints. Requests
// proceed only on a render decision; otherwise the decision is returned as
// the body: 503 while the session is settling, 401 for a login redirect and
// 403 for a verify-email redirect.
func Guard(g Guarder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().Header.Get(RequestedPathHeader)
			if path == "" {
				path = c.Request().URL.Path
			}

			d := g.Guard(path)
			switch d.Kind {
			case domain.DecisionRender:
				return next(c)
			case domain.DecisionShowLoading:
				c.Response().Header().Set(echo.HeaderRetryAfter, "1")
				return c.JSON(http.StatusServiceUnavailable, d)
			}

			if d.Path == domain.VerifyEmailPath {
				return c.JSON(http.StatusForbidden, d)
			}
			return c.JSON(http.StatusUnauthorized, d)
		}
	}
}
