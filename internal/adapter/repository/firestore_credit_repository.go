package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/pkg/errors"
)

type firestoreCreditRepository struct {
	client *firestore.Client
}

func NewFirestoreCreditRepository(client *firestore.Client) repository.CreditRepository {
	return &firestoreCreditRepository{
		client: client,
	}
}

func (r *firestoreCreditRepository) Create(ctx context.Context, entry *entity.CreditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	entry.CreatedAt = time.Now()

	_, err := r.client.Collection("credit_entries").Doc(entry.ID).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to create credit entry", err)
	}

	return nil
}

func (r *firestoreCreditRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.CreditEntry, int64, error) {
	query := r.client.Collection("credit_entries").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count credit entries", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var entries []*entity.CreditEntry

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate credit entries", err)
		}

		var entry entity.CreditEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, 0, errors.Internal("Failed to parse credit entry data", err)
		}
		entries = append(entries, &entry)
	}

	return entries, total, nil
}
