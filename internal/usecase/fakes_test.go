package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/pkg/errors"
)

// In-memory repositories backing the usecase tests. They mirror the
// Firestore adapters' semantics, including atomic get-or-create and
// transactional seq assignment.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Item", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return errors.NotFound("Item", nil)
	}
	item.UpdatedAt = time.Now()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) List(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.Item
	for _, item := range r.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.City != "" && item.City != filter.City {
			continue
		}
		if filter.OwnerID != "" && item.OwnerID != filter.OwnerID {
			continue
		}
		copied := *item
		items = append(items, &copied)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return paginate(items, limit, offset), int64(len(items)), nil
}

type fakeTransactionRepo struct {
	mu   sync.Mutex
	txns map[string]*entity.Transaction
	logs []*entity.TransactionLog
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txns: make(map[string]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now
	copied := *txn
	r.txns[txn.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[id]
	if !ok {
		return nil, errors.NotFound("Transaction", nil)
	}
	copied := *txn
	return &copied, nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, txn *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.txns[txn.ID]; !ok {
		return errors.NotFound("Transaction", nil)
	}
	txn.UpdatedAt = time.Now()
	copied := *txn
	r.txns[txn.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var txns []*entity.Transaction
	for _, txn := range r.txns {
		switch role {
		case "requester":
			if txn.RequesterID != userID {
				continue
			}
		case "owner":
			if txn.OwnerID != userID {
				continue
			}
		default:
			if !txn.Participant(userID) {
				continue
			}
		}
		if status != "" && txn.Status != status {
			continue
		}
		copied := *txn
		txns = append(txns, &copied)
	}
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})
	return paginate(txns, limit, offset), int64(len(txns)), nil
}

func (r *fakeTransactionRepo) CreateLog(ctx context.Context, log *entity.TransactionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	log.CreatedAt = time.Now()
	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *fakeTransactionRepo) ListLogsByTransactionID(ctx context.Context, transactionID string) ([]*entity.TransactionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var logs []*entity.TransactionLog
	for _, log := range r.logs {
		if log.TransactionID == transactionID {
			copied := *log
			logs = append(logs, &copied)
		}
	}
	return logs, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := "chat-" + chat.TransactionID
	if existing, ok := r.chats[id]; ok {
		copied := cloneChat(existing)
		return copied, false, nil
	}

	now := time.Now()
	created := &entity.Chat{
		ID:            id,
		TransactionID: chat.TransactionID,
		Participants:  append([]string(nil), chat.Participants...),
		UnreadCount:   make(map[string]int),
		LastReadSeq:   make(map[string]int64),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.chats[id] = created
	return cloneChat(created), true, nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return cloneChat(chat), nil
}

func (r *fakeChatRepo) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Chat, error) {
	return r.GetByID(ctx, "chat-"+transactionID)
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var chats []*entity.Chat
	for _, chat := range r.chats {
		for _, participant := range chat.Participants {
			if participant == userID {
				chats = append(chats, cloneChat(chat))
				break
			}
		}
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt)
	})
	return paginate(chats, limit, offset), int64(len(chats)), nil
}

func (r *fakeChatRepo) AppendMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[message.ChatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}

	chat.MessageSeq++
	message.ID = uuid.New().String()
	message.Seq = chat.MessageSeq
	message.CreatedAt = time.Now()
	if message.ReadBy == nil {
		message.ReadBy = []string{message.SenderID}
	}

	copied := *message
	r.messages[chat.ID] = append(r.messages[chat.ID], &copied)

	chat.LastMessage = message.Content
	chat.LastMessageAt = message.CreatedAt
	chat.UpdatedAt = message.CreatedAt
	for _, participant := range chat.Participants {
		if participant != message.SenderID {
			chat.UnreadCount[participant]++
		}
	}
	return nil
}

func (r *fakeChatRepo) ListMessagesSince(ctx context.Context, chatID string, sinceSeq int64, limit int) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var messages []*entity.Message
	for _, message := range r.messages[chatID] {
		if message.Seq > sinceSeq {
			copied := *message
			messages = append(messages, &copied)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Seq < messages[j].Seq
	})
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (r *fakeChatRepo) MarkRead(ctx context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.UnreadCount[userID] = 0
	chat.LastReadSeq[userID] = chat.MessageSeq
	return nil
}

type fakeCreditRepo struct {
	mu      sync.Mutex
	entries []*entity.CreditEntry
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{}
}

func (r *fakeCreditRepo) Create(ctx context.Context, entry *entity.CreditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeCreditRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.CreditEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []*entity.CreditEntry
	for _, entry := range r.entries {
		if entry.UserID == userID {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	return paginate(entries, limit, offset), int64(len(entries)), nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	copied := *review
	r.reviews = append(r.reviews, &copied)
	return nil
}

func (r *fakeReviewRepo) GetByTransactionAndReviewer(ctx context.Context, transactionID, reviewerID string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.TransactionID == transactionID && review.ReviewerID == reviewerID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *fakeReviewRepo) ListByTargetID(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reviews []*entity.Review
	for _, review := range r.reviews {
		if review.TargetID == targetID {
			copied := *review
			reviews = append(reviews, &copied)
		}
	}
	return paginate(reviews, limit, offset), int64(len(reviews)), nil
}

func cloneChat(chat *entity.Chat) *entity.Chat {
	copied := *chat
	copied.Participants = append([]string(nil), chat.Participants...)
	copied.UnreadCount = make(map[string]int, len(chat.UnreadCount))
	for k, v := range chat.UnreadCount {
		copied.UnreadCount[k] = v
	}
	copied.LastReadSeq = make(map[string]int64, len(chat.LastReadSeq))
	for k, v := range chat.LastReadSeq {
		copied.LastReadSeq[k] = v
	}
	return &copied
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
