package usecase

import (
	"context"
	"io"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/internal/infrastructure/storage"
	"tukarin/pkg/errors"
	"tukarin/pkg/logger"
)

const maxItemImages = 8

type ItemUseCase struct {
	itemRepo      repository.ItemRepository
	storageClient *storage.CloudStorageClient
}

func NewItemUseCase(itemRepo repository.ItemRepository, storageClient *storage.CloudStorageClient) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:      itemRepo,
		storageClient: storageClient,
	}
}

type CreateItemInput struct {
	Title       string
	Description string
	Category    string
	Condition   string
	Value       float64
	City        string
	Latitude    float64
	Longitude   float64
}

type UpdateItemInput struct {
	Title       string
	Description string
	Category    string
	Condition   string
	Value       float64
	City        string
	Status      string
}

func (uc *ItemUseCase) Create(ctx context.Context, userID string, input CreateItemInput) (*entity.Item, error) {
	item := &entity.Item{
		OwnerID:     userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Condition:   input.Condition,
		Value:       input.Value,
		City:        input.City,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Status:      entity.ItemStatusAvailable,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Item %s created by %s", item.ID, userID)
	return item, nil
}

func (uc *ItemUseCase) GetByID(ctx context.Context, itemID string) (*entity.Item, error) {
	return uc.itemRepo.GetByID(ctx, itemID)
}

func (uc *ItemUseCase) Update(ctx context.Context, userID, itemID string, input UpdateItemInput) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != userID {
		return nil, errors.Forbidden("You can only update your own items", nil)
	}
	if item.Status == entity.ItemStatusSwapped {
		return nil, errors.BadRequest("Swapped items can no longer be edited", nil)
	}

	if input.Title != "" {
		item.Title = input.Title
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.Condition != "" {
		item.Condition = input.Condition
	}
	if input.Value > 0 {
		item.Value = input.Value
	}
	if input.City != "" {
		item.City = input.City
	}
	if input.Status != "" {
		// Owners may only park or relist; swap states are driven by
		// the transaction lifecycle.
		if input.Status != entity.ItemStatusAvailable && input.Status != entity.ItemStatusArchived {
			return nil, errors.BadRequest("Invalid item status", nil)
		}
		item.Status = input.Status
	}

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int64, error) {
	return uc.itemRepo.List(ctx, filter, limit, offset)
}

// UploadImage stores an item photo and appends its URL to the item.
func (uc *ItemUseCase) UploadImage(ctx context.Context, userID, itemID string, file io.Reader, contentType string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != userID {
		return nil, errors.Forbidden("You can only upload images to your own items", nil)
	}
	if len(item.ImageURLs) >= maxItemImages {
		return nil, errors.BadRequest("Maximum number of item images reached", nil)
	}

	url, err := uc.storageClient.UploadFile(ctx, file, contentType, "items", true)
	if err != nil {
		return nil, errors.Internal("Failed to upload image", err)
	}

	item.ImageURLs = append(item.ImageURLs, url)
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}
