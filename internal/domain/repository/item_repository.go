package repository

import (
	"context"

	"tukarin/internal/domain/entity"
)

// ItemFilter holds the supported listing filters. Ranking of results is
// creation time, newest first.
type ItemFilter struct {
	Category string
	Status   string
	City     string
	OwnerID  string
}

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	List(ctx context.Context, filter ItemFilter, limit, offset int) ([]*entity.Item, int64, error)
}
