package usecase

import (
	"context"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
)

type CreditUseCase struct {
	creditRepo repository.CreditRepository
}

func NewCreditUseCase(creditRepo repository.CreditRepository) *CreditUseCase {
	return &CreditUseCase{
		creditRepo: creditRepo,
	}
}

type CreditSummary struct {
	Balance float64               `json:"balance"`
	Entries []*entity.CreditEntry `json:"entries"`
	Total   int64                 `json:"total"`
}

// GetSummary returns the caller's ledger balance plus a page of entries.
// The balance is always computed over the full ledger, not the page.
func (uc *CreditUseCase) GetSummary(ctx context.Context, userID string, limit, offset int) (*CreditSummary, error) {
	all, _, err := uc.creditRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return nil, err
	}

	var balance float64
	for _, entry := range all {
		balance += entry.Amount
	}

	entries, total, err := uc.creditRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &CreditSummary{
		Balance: balance,
		Entries: entries,
		Total:   total,
	}, nil
}
