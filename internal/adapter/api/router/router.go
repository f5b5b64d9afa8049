package router

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/adapter/api/handler"
	"tukarin/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, wsHandler *handler.WebSocketHandler) {
	SetupHealthRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupItemRouter(e, authMiddleware)
	SetupTransactionRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupCreditRouter(e, authMiddleware)
	SetupWebSocketRouter(e, wsHandler)
}
