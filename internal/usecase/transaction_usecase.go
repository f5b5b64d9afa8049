package usecase

import (
	"context"
	"time"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/internal/infrastructure/ratelimit"
	"tukarin/pkg/errors"
	"tukarin/pkg/logger"
)

type TransactionUseCase struct {
	transactionRepo repository.TransactionRepository
	itemRepo        repository.ItemRepository
	userRepo        repository.UserRepository
	creditRepo      repository.CreditRepository
	rateLimiter     *ratelimit.RateLimiter
}

func NewTransactionUseCase(
	transactionRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	creditRepo repository.CreditRepository,
) *TransactionUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		itemRepo:        itemRepo,
		userRepo:        userRepo,
		creditRepo:      creditRepo,
		rateLimiter:     rateLimiter,
	}
}

type CreateOfferInput struct {
	ItemID         string
	OfferedItemID  string
	OfferedCredits float64
	Notes          string
}

// CreateOffer opens a pending transaction against someone else's
// available item. The offer can be a counter-item, credits, or both.
func (uc *TransactionUseCase) CreateOffer(ctx context.Context, userID string, input CreateOfferInput) (*entity.Transaction, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "create_offer")
	if !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before creating another offer", waitTime)
	}

	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == userID {
		return nil, errors.BadRequest("You cannot make an offer on your own item", nil)
	}
	if item.Status != entity.ItemStatusAvailable {
		return nil, errors.BadRequest("Item is not available for swapping", nil)
	}

	if input.OfferedItemID == "" && input.OfferedCredits <= 0 {
		return nil, errors.BadRequest("An offer must include an item, credits, or both", nil)
	}

	if input.OfferedItemID != "" {
		offered, err := uc.itemRepo.GetByID(ctx, input.OfferedItemID)
		if err != nil {
			return nil, err
		}
		if offered.OwnerID != userID {
			return nil, errors.Forbidden("You can only offer your own items", nil)
		}
		if offered.Status != entity.ItemStatusAvailable {
			return nil, errors.BadRequest("Offered item is not available", nil)
		}
	}

	txn := &entity.Transaction{
		ItemID:         input.ItemID,
		RequesterID:    userID,
		OwnerID:        item.OwnerID,
		Status:         entity.TransactionStatusPending,
		OfferedItemID:  input.OfferedItemID,
		OfferedCredits: input.OfferedCredits,
		Notes:          input.Notes,
	}

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	uc.appendLog(ctx, txn, userID, "Offer created")
	logger.Info("Transaction %s created: %s offered on item %s", txn.ID, userID, item.ID)

	return txn, nil
}

// Accept moves a pending offer to accepted, reserves the item and fixes
// the final credit value. Owner only.
func (uc *TransactionUseCase) Accept(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.OwnerID != userID {
		return nil, errors.Forbidden("Only the item owner can accept an offer", nil)
	}
	if txn.Status != entity.TransactionStatusPending {
		return nil, errors.BadRequest("Only pending offers can be accepted", nil)
	}

	item, err := uc.itemRepo.GetByID(ctx, txn.ItemID)
	if err != nil {
		return nil, err
	}

	txn.Status = entity.TransactionStatusAccepted
	finalPrice := txn.OfferedCredits
	if finalPrice <= 0 {
		finalPrice = item.Value
	}
	txn.FinalPrice = &finalPrice

	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	item.Status = entity.ItemStatusReserved
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	uc.appendLog(ctx, txn, userID, "Offer accepted")

	return txn, nil
}

// Reject declines a pending offer. Owner only.
func (uc *TransactionUseCase) Reject(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.OwnerID != userID {
		return nil, errors.Forbidden("Only the item owner can reject an offer", nil)
	}
	if txn.Status != entity.TransactionStatusPending {
		return nil, errors.BadRequest("Only pending offers can be rejected", nil)
	}

	txn.Status = entity.TransactionStatusRejected
	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	uc.appendLog(ctx, txn, userID, "Offer rejected")

	return txn, nil
}

// Complete settles an accepted exchange: the item is marked swapped and
// a balancing pair of credit entries is written for any credit
// component of the deal. Either participant can complete.
func (uc *TransactionUseCase) Complete(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.Participant(userID) {
		return nil, errors.Forbidden("You are not a participant of this transaction", nil)
	}
	if txn.Status != entity.TransactionStatusAccepted {
		return nil, errors.BadRequest("Only accepted transactions can be completed", nil)
	}

	now := time.Now()
	txn.Status = entity.TransactionStatusCompleted
	txn.CompletedAt = &now

	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.GetByID(ctx, txn.ItemID)
	if err == nil {
		item.Status = entity.ItemStatusSwapped
		if err := uc.itemRepo.Update(ctx, item); err != nil {
			logger.Error("Complete: failed to mark item %s as swapped: %v", item.ID, err)
		}
	}

	if txn.OfferedItemID != "" {
		offered, err := uc.itemRepo.GetByID(ctx, txn.OfferedItemID)
		if err == nil {
			offered.Status = entity.ItemStatusSwapped
			if err := uc.itemRepo.Update(ctx, offered); err != nil {
				logger.Error("Complete: failed to mark offered item %s as swapped: %v", offered.ID, err)
			}
		}
	}

	if txn.OfferedCredits > 0 {
		debit := &entity.CreditEntry{
			UserID:        txn.RequesterID,
			TransactionID: txn.ID,
			Amount:        -txn.OfferedCredits,
			Reason:        "swap_payment",
		}
		credit := &entity.CreditEntry{
			UserID:        txn.OwnerID,
			TransactionID: txn.ID,
			Amount:        txn.OfferedCredits,
			Reason:        "swap_payment",
		}
		if err := uc.creditRepo.Create(ctx, debit); err != nil {
			logger.Error("Complete: failed to write debit entry for transaction %s: %v", txn.ID, err)
		}
		if err := uc.creditRepo.Create(ctx, credit); err != nil {
			logger.Error("Complete: failed to write credit entry for transaction %s: %v", txn.ID, err)
		}
	}

	uc.appendLog(ctx, txn, userID, "Transaction completed")
	logger.Info("Transaction %s completed by %s", txn.ID, userID)

	return txn, nil
}

func (uc *TransactionUseCase) GetByID(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.Participant(userID) {
		return nil, errors.Forbidden("You are not a participant of this transaction", nil)
	}

	return txn, nil
}

func (uc *TransactionUseCase) ListByUser(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Transaction, int64, error) {
	return uc.transactionRepo.ListByUserID(ctx, userID, role, status, limit, offset)
}

func (uc *TransactionUseCase) appendLog(ctx context.Context, txn *entity.Transaction, userID, notes string) {
	log := &entity.TransactionLog{
		TransactionID: txn.ID,
		Status:        txn.Status,
		Notes:         notes,
		CreatedBy:     userID,
	}
	if err := uc.transactionRepo.CreateLog(ctx, log); err != nil {
		logger.LogTransactionError(txn.ID, notes, err)
	}
}
