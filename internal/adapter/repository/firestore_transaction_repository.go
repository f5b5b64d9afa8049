package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/pkg/errors"
)

type firestoreTransactionRepository struct {
	client *firestore.Client
}

func NewFirestoreTransactionRepository(client *firestore.Client) repository.TransactionRepository {
	return &firestoreTransactionRepository{
		client: client,
	}
}

func (r *firestoreTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}

	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to create transaction", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	doc, err := r.client.Collection("transactions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Transaction", err)
		}
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transaction.UpdatedAt = time.Now()

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to update transaction", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Transaction, int64, error) {
	collection := r.client.Collection("transactions")

	// "" role means either side of the exchange; Firestore has no OR
	// query across fields on this index, so merge two queries.
	var queries []firestore.Query
	switch role {
	case "requester":
		queries = append(queries, collection.Where("requesterId", "==", userID))
	case "owner":
		queries = append(queries, collection.Where("ownerId", "==", userID))
	case "":
		queries = append(queries,
			collection.Where("requesterId", "==", userID),
			collection.Where("ownerId", "==", userID))
	default:
		return nil, 0, errors.BadRequest("Invalid role", nil)
	}

	seen := make(map[string]bool)
	var transactions []*entity.Transaction

	for _, query := range queries {
		if status != "" {
			query = query.Where("status", "==", status)
		}
		query = query.OrderBy("createdAt", firestore.Desc)

		iter := query.Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, 0, errors.Internal("Failed to iterate transactions", err)
			}

			var transaction entity.Transaction
			if err := doc.DataTo(&transaction); err != nil {
				return nil, 0, errors.Internal("Failed to parse transaction data", err)
			}
			if seen[transaction.ID] {
				continue
			}
			seen[transaction.ID] = true
			transactions = append(transactions, &transaction)
		}
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	total := int64(len(transactions))

	start := offset
	if start > len(transactions) {
		start = len(transactions)
	}
	end := len(transactions)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return transactions[start:end], total, nil
}

func (r *firestoreTransactionRepository) CreateLog(ctx context.Context, log *entity.TransactionLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	log.CreatedAt = time.Now()

	_, err := r.client.Collection("transaction_logs").Doc(log.ID).Set(ctx, log)
	if err != nil {
		return errors.Internal("Failed to create transaction log", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) ListLogsByTransactionID(ctx context.Context, transactionID string) ([]*entity.TransactionLog, error) {
	query := r.client.Collection("transaction_logs").
		Where("transactionId", "==", transactionID).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var logs []*entity.TransactionLog

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate transaction logs", err)
		}

		var log entity.TransactionLog
		if err := doc.DataTo(&log); err != nil {
			return nil, errors.Internal("Failed to parse transaction log data", err)
		}
		logs = append(logs, &log)
	}

	return logs, nil
}
