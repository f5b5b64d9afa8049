package repository

import (
	"context"

	"tukarin/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByTransactionAndReviewer(ctx context.Context, transactionID, reviewerID string) (*entity.Review, error)
	ListByTargetID(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error)
}
