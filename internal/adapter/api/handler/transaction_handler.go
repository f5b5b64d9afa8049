package handler

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/usecase"
	"tukarin/pkg/response"
	"tukarin/pkg/utils"
)

type TransactionHandler struct {
	transactionUseCase *usecase.TransactionUseCase
}

func NewTransactionHandler(transactionUseCase *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
	}
}

type createOfferRequest struct {
	ItemID         string  `json:"item_id" validate:"required"`
	OfferedItemID  string  `json:"offered_item_id"`
	OfferedCredits float64 `json:"offered_credits" validate:"omitempty,gt=0"`
	Notes          string  `json:"notes" validate:"omitempty,max=500"`
}

func (h *TransactionHandler) CreateOffer(c echo.Context) error {
	var req createOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	txn, err := h.transactionUseCase.CreateOffer(c.Request().Context(), userID, usecase.CreateOfferInput{
		ItemID:         req.ItemID,
		OfferedItemID:  req.OfferedItemID,
		OfferedCredits: req.OfferedCredits,
		Notes:          req.Notes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, txn)
}

func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID := c.Get("uid").(string)

	txn, err := h.transactionUseCase.GetByID(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}

func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	txns, total, err := h.transactionUseCase.ListByUser(
		c.Request().Context(),
		userID,
		c.QueryParam("role"),
		c.QueryParam("status"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, txns, total, pagination.Page, pagination.PageSize)
}

func (h *TransactionHandler) AcceptOffer(c echo.Context) error {
	userID := c.Get("uid").(string)

	txn, err := h.transactionUseCase.Accept(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}

func (h *TransactionHandler) RejectOffer(c echo.Context) error {
	userID := c.Get("uid").(string)

	txn, err := h.transactionUseCase.Reject(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}

func (h *TransactionHandler) CompleteTransaction(c echo.Context) error {
	userID := c.Get("uid").(string)

	txn, err := h.transactionUseCase.Complete(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}
