package handler

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/usecase"
	"tukarin/pkg/response"
	"tukarin/pkg/utils"
)

type CreditHandler struct {
	creditUseCase *usecase.CreditUseCase
}

func NewCreditHandler(creditUseCase *usecase.CreditUseCase) *CreditHandler {
	return &CreditHandler{
		creditUseCase: creditUseCase,
	}
}

func (h *CreditHandler) GetCredits(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	summary, err := h.creditUseCase.GetSummary(c.Request().Context(), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}
