package usecase

import (
	"context"
	"sort"
	"sync"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/pkg/errors"
	"tukarin/pkg/logger"
)

// NotificationUseCase builds the unread-message feed by scanning the
// caller's transactions and replaying each room's log past their read
// cursor. Nothing is persisted per notification: the durable state is
// the per-room read cursor, and per-message dismissals live only for
// the process lifetime.
type NotificationUseCase struct {
	transactionRepo repository.TransactionRepository
	chatRepo        repository.ChatRepository
	userRepo        repository.UserRepository

	pollIntervalSec int64

	mutex     sync.RWMutex
	dismissed map[string]map[string]bool // userID -> messageID
}

func NewNotificationUseCase(
	transactionRepo repository.TransactionRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	pollIntervalSec int64,
) *NotificationUseCase {
	return &NotificationUseCase{
		transactionRepo: transactionRepo,
		chatRepo:        chatRepo,
		userRepo:        userRepo,
		pollIntervalSec: pollIntervalSec,
		dismissed:       make(map[string]map[string]bool),
	}
}

// PollInterval is the refresh cadence advertised to clients.
func (uc *NotificationUseCase) PollInterval() int64 {
	return uc.pollIntervalSec
}

// Refresh rebuilds the caller's notification feed from scratch: every
// counterparty message past the caller's read cursor, newest first,
// deduplicated by message id. Rooms are created on demand so a fresh
// transaction shows up without either side having opened its chat.
func (uc *NotificationUseCase) Refresh(ctx context.Context, userID string) ([]*entity.Notification, error) {
	transactions, _, err := uc.transactionRepo.ListByUserID(ctx, userID, "", "", 0, 0)
	if err != nil {
		return nil, err
	}

	senderNames := make(map[string]string)
	seen := make(map[string]bool)
	var notifications []*entity.Notification

	for _, txn := range transactions {
		chat, _, err := uc.chatRepo.GetOrCreate(ctx, &entity.Chat{
			TransactionID: txn.ID,
			Participants:  []string{txn.RequesterID, txn.OwnerID},
		})
		if err != nil {
			logger.Warn("Notification refresh: failed to resolve room for transaction %s: %v", txn.ID, err)
			continue
		}

		messages, err := uc.chatRepo.ListMessagesSince(ctx, chat.ID, chat.LastReadSeq[userID], 0)
		if err != nil {
			logger.Warn("Notification refresh: failed to list messages for chat %s: %v", chat.ID, err)
			continue
		}

		for _, message := range messages {
			if message.SenderID == userID {
				continue
			}
			if uc.isDismissed(userID, message.ID) {
				continue
			}
			if seen[message.ID] {
				continue
			}
			seen[message.ID] = true

			name, ok := senderNames[message.SenderID]
			if !ok {
				if sender, err := uc.userRepo.GetByID(ctx, message.SenderID); err == nil {
					name = sender.Username
				}
				senderNames[message.SenderID] = name
			}

			notifications = append(notifications, &entity.Notification{
				MessageID:     message.ID,
				ChatID:        chat.ID,
				TransactionID: txn.ID,
				SenderID:      message.SenderID,
				SenderName:    name,
				Content:       message.Content,
				Seq:           message.Seq,
				CreatedAt:     message.CreatedAt,
			})
		}
	}

	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].Seq > notifications[j].Seq
	})

	return notifications, nil
}

// MarkRead dismisses a single notification for this session. The
// message must currently be in the caller's feed.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, messageID string) error {
	notifications, err := uc.Refresh(ctx, userID)
	if err != nil {
		return err
	}

	for _, notification := range notifications {
		if notification.MessageID == messageID {
			uc.dismiss(userID, messageID)
			return nil
		}
	}

	return errors.NotFound("Notification", nil)
}

// MarkAllRead dismisses the caller's entire current feed.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	notifications, err := uc.Refresh(ctx, userID)
	if err != nil {
		return err
	}

	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	set, ok := uc.dismissed[userID]
	if !ok {
		set = make(map[string]bool)
		uc.dismissed[userID] = set
	}
	for _, notification := range notifications {
		set[notification.MessageID] = true
	}

	return nil
}

func (uc *NotificationUseCase) dismiss(userID, messageID string) {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	set, ok := uc.dismissed[userID]
	if !ok {
		set = make(map[string]bool)
		uc.dismissed[userID] = set
	}
	set[messageID] = true
}

func (uc *NotificationUseCase) isDismissed(userID, messageID string) bool {
	uc.mutex.RLock()
	defer uc.mutex.RUnlock()
	return uc.dismissed[userID][messageID]
}
