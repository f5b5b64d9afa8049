package router

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/adapter/api/handler"
	"tukarin/internal/adapter/api/middleware"
)

func SetupCreditRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	creditHandler := handler.GetCreditHandler()

	credits := e.Group("/v1/credits")
	credits.Use(authMiddleware.Authenticate)
	credits.GET("", creditHandler.GetCredits)
}
