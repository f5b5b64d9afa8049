package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tukarin/internal/domain/entity"
	"tukarin/pkg/errors"
)

func newTransactionTestEnv(t *testing.T) (*TransactionUseCase, *fakeTransactionRepo, *fakeItemRepo, *fakeUserRepo, *fakeCreditRepo) {
	t.Helper()

	transactionRepo := newFakeTransactionRepo()
	itemRepo := newFakeItemRepo()
	userRepo := newFakeUserRepo()
	creditRepo := newFakeCreditRepo()

	uc := NewTransactionUseCase(transactionRepo, itemRepo, userRepo, creditRepo)
	return uc, transactionRepo, itemRepo, userRepo, creditRepo
}

func seedItem(t *testing.T, itemRepo *fakeItemRepo, ownerID string, value float64) *entity.Item {
	t.Helper()

	item := &entity.Item{
		OwnerID:   ownerID,
		Title:     "Mechanical keyboard",
		Category:  "electronics",
		Condition: "used",
		Value:     value,
		Status:    entity.ItemStatusAvailable,
	}
	require.NoError(t, itemRepo.Create(context.Background(), item))
	return item
}

func TestCreateOfferLifecycle(t *testing.T) {
	uc, _, itemRepo, _, creditRepo := newTransactionTestEnv(t)
	ctx := context.Background()

	item := seedItem(t, itemRepo, "bob", 150)

	txn, err := uc.CreateOffer(ctx, "alice", CreateOfferInput{
		ItemID:         item.ID,
		OfferedCredits: 120,
		Notes:          "deal?",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, txn.Status)
	assert.Equal(t, "alice", txn.RequesterID)
	assert.Equal(t, "bob", txn.OwnerID)

	txn, err = uc.Accept(ctx, "bob", txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusAccepted, txn.Status)
	require.NotNil(t, txn.FinalPrice)
	assert.Equal(t, 120.0, *txn.FinalPrice)

	reserved, err := itemRepo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusReserved, reserved.Status)

	txn, err = uc.Complete(ctx, "alice", txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, txn.Status)
	require.NotNil(t, txn.CompletedAt)

	swapped, err := itemRepo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusSwapped, swapped.Status)

	aliceEntries, _, err := creditRepo.ListByUserID(ctx, "alice", 0, 0)
	require.NoError(t, err)
	require.Len(t, aliceEntries, 1)
	assert.Equal(t, -120.0, aliceEntries[0].Amount)

	bobEntries, _, err := creditRepo.ListByUserID(ctx, "bob", 0, 0)
	require.NoError(t, err)
	require.Len(t, bobEntries, 1)
	assert.Equal(t, 120.0, bobEntries[0].Amount)
}

func TestCreateOfferOnOwnItem(t *testing.T) {
	uc, _, itemRepo, _, _ := newTransactionTestEnv(t)
	item := seedItem(t, itemRepo, "alice", 100)

	_, err := uc.CreateOffer(context.Background(), "alice", CreateOfferInput{ItemID: item.ID, OfferedCredits: 50})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateOfferRequiresSomethingInReturn(t *testing.T) {
	uc, _, itemRepo, _, _ := newTransactionTestEnv(t)
	item := seedItem(t, itemRepo, "bob", 100)

	_, err := uc.CreateOffer(context.Background(), "alice", CreateOfferInput{ItemID: item.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateOfferOnReservedItem(t *testing.T) {
	uc, _, itemRepo, _, _ := newTransactionTestEnv(t)
	ctx := context.Background()

	item := seedItem(t, itemRepo, "bob", 100)
	item.Status = entity.ItemStatusReserved
	require.NoError(t, itemRepo.Update(ctx, item))

	_, err := uc.CreateOffer(ctx, "alice", CreateOfferInput{ItemID: item.ID, OfferedCredits: 50})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestAcceptRequiresOwner(t *testing.T) {
	uc, _, itemRepo, _, _ := newTransactionTestEnv(t)
	ctx := context.Background()

	item := seedItem(t, itemRepo, "bob", 100)
	txn, err := uc.CreateOffer(ctx, "alice", CreateOfferInput{ItemID: item.ID, OfferedCredits: 50})
	require.NoError(t, err)

	_, err = uc.Accept(ctx, "alice", txn.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCompleteRequiresAcceptedStatus(t *testing.T) {
	uc, _, itemRepo, _, _ := newTransactionTestEnv(t)
	ctx := context.Background()

	item := seedItem(t, itemRepo, "bob", 100)
	txn, err := uc.CreateOffer(ctx, "alice", CreateOfferInput{ItemID: item.ID, OfferedCredits: 50})
	require.NoError(t, err)

	_, err = uc.Complete(ctx, "alice", txn.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRejectLeavesItemAvailable(t *testing.T) {
	uc, _, itemRepo, _, _ := newTransactionTestEnv(t)
	ctx := context.Background()

	item := seedItem(t, itemRepo, "bob", 100)
	txn, err := uc.CreateOffer(ctx, "alice", CreateOfferInput{ItemID: item.ID, OfferedCredits: 50})
	require.NoError(t, err)

	txn, err = uc.Reject(ctx, "bob", txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusRejected, txn.Status)

	fresh, err := itemRepo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusAvailable, fresh.Status)
}

func TestGetByIDHidesForeignTransactions(t *testing.T) {
	uc, _, itemRepo, _, _ := newTransactionTestEnv(t)
	ctx := context.Background()

	item := seedItem(t, itemRepo, "bob", 100)
	txn, err := uc.CreateOffer(ctx, "alice", CreateOfferInput{ItemID: item.ID, OfferedCredits: 50})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, "mallory", txn.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestTransactionLogsRecordLifecycle(t *testing.T) {
	uc, transactionRepo, itemRepo, _, _ := newTransactionTestEnv(t)
	ctx := context.Background()

	item := seedItem(t, itemRepo, "bob", 100)
	txn, err := uc.CreateOffer(ctx, "alice", CreateOfferInput{ItemID: item.ID, OfferedCredits: 50})
	require.NoError(t, err)

	_, err = uc.Accept(ctx, "bob", txn.ID)
	require.NoError(t, err)
	_, err = uc.Complete(ctx, "bob", txn.ID)
	require.NoError(t, err)

	logs, err := transactionRepo.ListLogsByTransactionID(ctx, txn.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, entity.TransactionStatusPending, logs[0].Status)
	assert.Equal(t, entity.TransactionStatusAccepted, logs[1].Status)
	assert.Equal(t, entity.TransactionStatusCompleted, logs[2].Status)
}
