package usecase

import (
	"context"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/pkg/errors"
	"tukarin/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo      repository.ReviewRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:      reviewRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

type CreateReviewInput struct {
	TransactionID string
	Rating        int
	Content       string
}

// Create writes one review per participant per completed transaction
// and folds the rating into the counterparty's running average.
func (uc *ReviewUseCase) Create(ctx context.Context, userID string, input CreateReviewInput) (*entity.Review, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	if !txn.Participant(userID) {
		return nil, errors.Forbidden("You are not a participant of this transaction", nil)
	}
	if txn.Status != entity.TransactionStatusCompleted {
		return nil, errors.BadRequest("Only completed transactions can be reviewed", nil)
	}

	existing, err := uc.reviewRepo.GetByTransactionAndReviewer(ctx, txn.ID, userID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("You have already reviewed this transaction")
	}

	review := &entity.Review{
		TransactionID: txn.ID,
		ReviewerID:    userID,
		TargetID:      txn.Counterparty(userID),
		Rating:        input.Rating,
		Content:       input.Content,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if userID == txn.RequesterID {
		txn.RequesterReviewed = true
	} else {
		txn.OwnerReviewed = true
	}
	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		logger.Warn("Review create: failed to flag transaction %s as reviewed: %v", txn.ID, err)
	}

	uc.updateTargetRating(ctx, review.TargetID, review.Rating)

	return review, nil
}

func (uc *ReviewUseCase) ListByUser(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListByTargetID(ctx, targetID, limit, offset)
}

func (uc *ReviewUseCase) updateTargetRating(ctx context.Context, targetID string, rating int) {
	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		logger.Warn("Review create: failed to load target user %s: %v", targetID, err)
		return
	}

	total := target.SwapRating*float64(target.SwapReviewCount) + float64(rating)
	target.SwapReviewCount++
	target.SwapRating = total / float64(target.SwapReviewCount)

	if err := uc.userRepo.Update(ctx, target); err != nil {
		logger.Warn("Review create: failed to update rating for user %s: %v", targetID, err)
	}
}
