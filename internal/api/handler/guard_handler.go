package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// Evaluator decides whether a destination may be rendered.
type Evaluator interface {
	Evaluate(path string) domain.Decision
}

// Drainer hands out pending notifications.
type Drainer interface {
	Drain() []domain.Notification
}

type GuardHandler struct {
	guard Evaluator
}

func NewGuardHandler(guard Evaluator) *GuardHandler {
	return &GuardHandler{guard: guard}
}

// Evaluate tells the presentation layer what to do with a destination.
//
// @Summary      Evaluate route guard
// @Tags         guard
// @Produce      json
// @Param        path  query     string  true  "Requested destination"
// @Success      200   {object}  domain.Decision
// @Failure      400   {object}  map[string]string
// @Router       /v1/guard [get]
func (h *GuardHandler) Evaluate(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return domain.NewValidationFault("path is required")
	}
	return c.JSON(http.StatusOK, h.guard.Evaluate(path))
}

type NotificationHandler struct {
	inbox Drainer
}

func NewNotificationHandler(inbox Drainer) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

type notificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// Drain returns and clears the pending notifications.
//
// @Summary      Pending notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notificationsResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) Drain(c echo.Context) error {
	return c.JSON(http.StatusOK, notificationsResponse{Notifications: h.inbox.Drain()})
}
