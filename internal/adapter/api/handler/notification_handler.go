package handler

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/usecase"
	"tukarin/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

// ListNotifications rebuilds and returns the caller's unread feed.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)

	notifications, err := h.notificationUseCase.Refresh(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"notifications":         notifications,
		"unread_count":          len(notifications),
		"poll_interval_seconds": h.notificationUseCase.PollInterval(),
	})
}

func (h *NotificationHandler) MarkNotificationRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"status": "read",
	})
}

func (h *NotificationHandler) MarkAllNotificationsRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkAllRead(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"status": "read",
	})
}
