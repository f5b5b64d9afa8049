package repository

import (
	"context"

	"tukarin/internal/domain/entity"
)

type ChatRepository interface {
	// GetOrCreate materializes the chat room for chat.TransactionID if
	// it does not exist yet. The operation is atomic at the storage
	// layer: concurrent calls for the same transaction resolve to the
	// single existing room. The returned bool reports whether the room
	// was created by this call.
	GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, bool, error)

	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)

	// AppendMessage assigns the message id, seq and timestamp, stores
	// it, and bumps the room's last-message and unread bookkeeping in
	// one atomic operation.
	AppendMessage(ctx context.Context, message *entity.Message) error

	// ListMessagesSince returns messages with seq > sinceSeq in
	// ascending seq order; limit <= 0 means no limit.
	ListMessagesSince(ctx context.Context, chatID string, sinceSeq int64, limit int) ([]*entity.Message, error)

	// MarkRead zeroes the user's unread counter and advances their
	// durable last-read marker to the room's current seq.
	MarkRead(ctx context.Context, chatID, userID string) error
}
