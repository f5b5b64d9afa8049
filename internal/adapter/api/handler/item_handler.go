package handler

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/domain/repository"
	"tukarin/internal/usecase"
	"tukarin/pkg/errors"
	"tukarin/pkg/response"
	"tukarin/pkg/utils"
)

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
	}
}

type createItemRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"required,min=10"`
	Category    string  `json:"category" validate:"required"`
	Condition   string  `json:"condition" validate:"required,oneof=new like_new used worn"`
	Value       float64 `json:"value" validate:"required,gt=0"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type updateItemRequest struct {
	Title       string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,min=10"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition" validate:"omitempty,oneof=new like_new used worn"`
	Value       float64 `json:"value" validate:"omitempty,gt=0"`
	City        string  `json:"city"`
	Status      string  `json:"status" validate:"omitempty,oneof=available archived"`
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.itemUseCase.Create(c.Request().Context(), userID, usecase.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		Value:       req.Value,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	item, err := h.itemUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.itemUseCase.Update(c.Request().Context(), userID, c.Param("id"), usecase.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		Value:       req.Value,
		City:        req.City,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := repository.ItemFilter{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		City:     c.QueryParam("city"),
		OwnerID:  c.QueryParam("owner_id"),
	}

	items, total, err := h.itemUseCase.List(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *ItemHandler) UploadItemImage(c echo.Context) error {
	userID := c.Get("uid").(string)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Image file is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	item, err := h.itemUseCase.UploadImage(c.Request().Context(), userID, c.Param("id"), file, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}
