package repository

import (
	"context"

	"tukarin/internal/domain/entity"
)

type CreditRepository interface {
	Create(ctx context.Context, entry *entity.CreditEntry) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.CreditEntry, int64, error)
}
