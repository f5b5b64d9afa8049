package router

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/adapter/api/handler"
	"tukarin/internal/adapter/api/middleware"
)

func SetupTransactionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	transactionHandler := handler.GetTransactionHandler()

	transactions := e.Group("/v1/transactions")
	transactions.Use(authMiddleware.Authenticate)
	transactions.POST("", transactionHandler.CreateOffer)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.POST("/:id/accept", transactionHandler.AcceptOffer)
	transactions.POST("/:id/reject", transactionHandler.RejectOffer)
	transactions.POST("/:id/complete", transactionHandler.CompleteTransaction)
}
