package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/pkg/errors"
	"tukarin/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

// chatDocID derives the room document ID from the transaction ID. The
// deterministic key is what enforces at most one room per transaction:
// two participants racing to create the room target the same document.
func chatDocID(transactionID string) string {
	return "chat-" + transactionID
}

func (r *firestoreChatRepository) GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, bool, error) {
	docRef := r.client.Collection("chats").Doc(chatDocID(chat.TransactionID))

	var result entity.Chat
	created := false

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil {
			created = false
			return doc.DataTo(&result)
		}
		if status.Code(err) != codes.NotFound {
			return err
		}

		now := time.Now()
		chat.ID = docRef.ID
		chat.CreatedAt = now
		chat.UpdatedAt = now
		chat.LastMessageAt = now
		if chat.UnreadCount == nil {
			chat.UnreadCount = make(map[string]int)
		}
		if chat.LastReadSeq == nil {
			chat.LastReadSeq = make(map[string]int64)
		}

		if err := tx.Create(docRef, chat); err != nil {
			return err
		}

		created = true
		result = *chat
		return nil
	})
	if err != nil {
		if status.Code(err) == codes.Unavailable {
			return nil, false, errors.Unavailable("Chat store is unavailable", err)
		}
		return nil, false, errors.Internal("Failed to get or create chat", err)
	}

	return &result, created, nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		if status.Code(err) == codes.Unavailable {
			return nil, errors.Unavailable("Chat store is unavailable", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Chat, error) {
	return r.GetByID(ctx, chatDocID(transactionID))
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching chats for user %s: %v", userID, err)
		return nil, 0, errors.Internal("Failed to fetch chats", err)
	}

	total := int64(len(allDocs))

	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var chats []*entity.Chat
	for i := start; i < end; i++ {
		var chat entity.Chat
		if err := allDocs[i].DataTo(&chat); err != nil {
			logger.Warn("Skipping malformed chat document for user %s: %v", userID, err)
			continue
		}
		chats = append(chats, &chat)
	}

	return chats, total, nil
}

func (r *firestoreChatRepository) AppendMessage(ctx context.Context, message *entity.Message) error {
	chatRef := r.client.Collection("chats").Doc(message.ChatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(chatRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Chat", err)
			}
			return err
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			return err
		}

		if message.ID == "" {
			message.ID = uuid.New().String()
		}
		message.Seq = chat.MessageSeq + 1
		message.CreatedAt = time.Now()
		if message.ReadBy == nil {
			message.ReadBy = []string{message.SenderID}
		}

		msgRef := chatRef.Collection("messages").Doc(message.ID)
		if err := tx.Create(msgRef, message); err != nil {
			return err
		}

		chat.MessageSeq = message.Seq
		chat.LastMessage = message.Content
		chat.LastMessageAt = message.CreatedAt
		chat.UpdatedAt = message.CreatedAt
		if chat.UnreadCount == nil {
			chat.UnreadCount = make(map[string]int)
		}
		for _, participantID := range chat.Participants {
			if participantID != message.SenderID {
				chat.UnreadCount[participantID]++
			}
		}

		return tx.Set(chatRef, &chat)
	})
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return err
		}
		if status.Code(err) == codes.Unavailable {
			return errors.Unavailable("Chat store is unavailable", err)
		}
		return errors.Internal("Failed to append message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessagesSince(ctx context.Context, chatID string, sinceSeq int64, limit int) ([]*entity.Message, error) {
	query := r.client.Collection("chats").Doc(chatID).Collection("messages").
		Where("seq", ">", sinceSeq).
		OrderBy("seq", firestore.Asc)

	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating messages for chat %s: %v", chatID, err)
			if status.Code(err) == codes.Unavailable {
				return nil, errors.Unavailable("Chat store is unavailable", err)
			}
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreChatRepository) MarkRead(ctx context.Context, chatID, userID string) error {
	chatRef := r.client.Collection("chats").Doc(chatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(chatRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Chat", err)
			}
			return err
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			return err
		}

		if chat.UnreadCount == nil {
			chat.UnreadCount = make(map[string]int)
		}
		if chat.LastReadSeq == nil {
			chat.LastReadSeq = make(map[string]int64)
		}
		chat.UnreadCount[userID] = 0
		chat.LastReadSeq[userID] = chat.MessageSeq
		chat.UpdatedAt = time.Now()

		return tx.Set(chatRef, &chat)
	})
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return err
		}
		if status.Code(err) == codes.Unavailable {
			return errors.Unavailable("Chat store is unavailable", err)
		}
		return errors.Internal("Failed to mark chat as read", err)
	}

	return nil
}
