package handler

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/usecase"
	"tukarin/pkg/response"
	"tukarin/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Content       string `json:"content" validate:"omitempty,max=1000"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	review, err := h.reviewUseCase.Create(c.Request().Context(), userID, usecase.CreateReviewInput{
		TransactionID: req.TransactionID,
		Rating:        req.Rating,
		Content:       req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) ListUserReviews(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListByUser(c.Request().Context(), c.Param("id"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}
