package router

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/adapter/api/handler"
	"tukarin/internal/adapter/api/middleware"
)

func SetupItemRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	itemHandler := handler.GetItemHandler()

	items := e.Group("/v1/items")
	items.Use(authMiddleware.Authenticate)
	items.POST("", itemHandler.CreateItem)
	items.GET("", itemHandler.ListItems)
	items.GET("/:id", itemHandler.GetItem)
	items.PATCH("/:id", itemHandler.UpdateItem)
	items.POST("/:id/images", itemHandler.UploadItemImage)
}
