package router

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/adapter/api/handler"
	"tukarin/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)
	chats.GET("", chatHandler.GetUserChats)
	chats.GET("/transaction/:transactionId", chatHandler.GetRoomByTransaction)
	chats.GET("/:id", chatHandler.GetChatByID)
	chats.GET("/:id/messages", chatHandler.GetChatMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.PUT("/:id/read", chatHandler.MarkChatAsRead)
}
