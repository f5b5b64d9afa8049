package usecase

import (
	"context"
	"strings"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/internal/infrastructure/ratelimit"
	ws "tukarin/internal/infrastructure/websocket"
	"tukarin/pkg/errors"
	"tukarin/pkg/logger"
)

const maxMessageLength = 2000

type ChatUseCase struct {
	chatRepo        repository.ChatRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	wsManager       *ws.Manager
	rateLimiter     *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:        chatRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		wsManager:       wsManager,
		rateLimiter:     rateLimiter,
	}
}

type SendMessageInput struct {
	ChatID  string
	Content string
}

type ChatResponse struct {
	*entity.Chat
	OtherUser   *entity.User        `json:"other_user,omitempty"`
	Transaction *entity.Transaction `json:"transaction,omitempty"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.User `json:"sender,omitempty"`
}

// GetOrCreateRoom resolves the single chat room bound to a transaction,
// creating it on first access. Both participants resolve to the same
// room no matter who asks first or how often.
func (uc *ChatUseCase) GetOrCreateRoom(ctx context.Context, userID, transactionID string) (*ChatResponse, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.Participant(userID) {
		logger.Warn("GetOrCreateRoom: user %s is not a participant of transaction %s", userID, transactionID)
		return nil, errors.Forbidden("You are not a participant of this transaction", nil)
	}

	chat, created, err := uc.chatRepo.GetOrCreate(ctx, &entity.Chat{
		TransactionID: transactionID,
		Participants:  []string{txn.RequesterID, txn.OwnerID},
	})
	if err != nil {
		return nil, err
	}

	if created {
		logger.Info("Chat room %s created for transaction %s", chat.ID, transactionID)
	}

	return uc.buildChatResponse(ctx, userID, chat, txn), nil
}

// SendMessage appends a message to the room's log and fans it out to
// current room subscribers. The returned message carries the
// server-assigned id, seq and timestamp.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*MessageResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "send_message")
	if !allowed {
		logger.Warn("SendMessage rate limited: user %s must wait %v", userID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message", waitTime)
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}
	if len(content) > maxMessageLength {
		return nil, errors.BadRequest("Message content is too long", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(chat, userID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}

	message := &entity.Message{
		ChatID:   chat.ID,
		SenderID: userID,
		Content:  content,
	}

	if err := uc.chatRepo.AppendMessage(ctx, message); err != nil {
		return nil, err
	}

	sender, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("SendMessage: failed to load sender %s: %v", userID, err)
		sender = nil
	}

	event := ws.NewEvent(ws.EventMessage)
	event.RoomID = chat.ID
	event.Message = message
	event.SenderID = userID
	if sender != nil {
		event.Sender = sender.Username
	}
	uc.wsManager.PublishToRoom(chat.ID, event, userID)

	for _, participant := range chat.Participants {
		if participant == userID {
			continue
		}
		update := ws.NewEvent(ws.EventChatListUpdate)
		update.RoomID = chat.ID
		update.Message = message
		uc.wsManager.SendToUser(participant, update)
	}

	return &MessageResponse{Message: message, Sender: sender}, nil
}

// ListMessages returns messages with seq strictly greater than
// sinceSeq, oldest first. sinceSeq 0 replays the room from the start.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string, sinceSeq int64, limit int) ([]*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(chat, userID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return uc.chatRepo.ListMessagesSince(ctx, chatID, sinceSeq, limit)
}

// MarkChatAsRead zeroes the caller's unread counter and advances their
// read cursor to the room's current seq.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !isParticipant(chat, userID) {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}

	return uc.chatRepo.MarkRead(ctx, chatID, userID)
}

func (uc *ChatUseCase) GetUserChats(ctx context.Context, userID string, limit, offset int) ([]*ChatResponse, int64, error) {
	chats, total, err := uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ChatResponse, 0, len(chats))
	for _, chat := range chats {
		responses = append(responses, uc.buildChatResponse(ctx, userID, chat, nil))
	}

	return responses, total, nil
}

func (uc *ChatUseCase) GetChatByID(ctx context.Context, userID, chatID string) (*ChatResponse, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(chat, userID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}

	return uc.buildChatResponse(ctx, userID, chat, nil), nil
}

func (uc *ChatUseCase) buildChatResponse(ctx context.Context, userID string, chat *entity.Chat, txn *entity.Transaction) *ChatResponse {
	resp := &ChatResponse{Chat: chat, Transaction: txn}

	for _, participant := range chat.Participants {
		if participant == userID {
			continue
		}
		other, err := uc.userRepo.GetByID(ctx, participant)
		if err != nil {
			logger.Debug("buildChatResponse: failed to load user %s: %v", participant, err)
			break
		}
		resp.OtherUser = other
		break
	}

	return resp
}

func isParticipant(chat *entity.Chat, userID string) bool {
	for _, participant := range chat.Participants {
		if participant == userID {
			return true
		}
	}
	return false
}
