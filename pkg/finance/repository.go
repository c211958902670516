package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsdesk/opsdesk/internal/storage"
)

const collectionName = "transactions"

// seedTransactions is the ledger a fresh account starts with.
var seedTransactions = []Transaction{
	{ID: "1", Description: "WhatsApp API subscription", Amount: 250, Kind: KindExpense, Date: "2023-10-05", Month: "Out", Category: "Software"},
	{ID: "2", Description: "Premium plan sale", Amount: 1500, Kind: KindIncome, Date: "2023-10-10", Month: "Out", Category: "Sales"},
	{ID: "3", Description: "Office rent", Amount: 800, Kind: KindExpense, Date: "2023-10-15", Month: "Out", Category: "Infrastructure"},
	{ID: "4", Description: "Specialized consulting", Amount: 3000, Kind: KindIncome, Date: "2023-09-20", Month: "Set", Category: "Services"},
	{ID: "5", Description: "Digital marketing", Amount: 1200, Kind: KindExpense, Date: "2023-09-25", Month: "Set", Category: "Marketing"},
}

type Repository interface {
	GetAll(ctx context.Context, userId int) ([]Transaction, error)
	ReplaceAll(ctx context.Context, userId int, transactions []Transaction) error
}

type RepositoryImpl struct {
	snapshots storage.Snapshots
}

func NewRepository(snapshots storage.Snapshots) *RepositoryImpl {
	return &RepositoryImpl{snapshots: snapshots}
}

// GetAll returns the stored ledger, or the seed when the user has no
// snapshot yet. The seed is a copy so callers may mutate freely.
func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Transaction, error) {
	var transactions []Transaction
	err := r.snapshots.Load(ctx, userId, collectionName, &transactions)
	if errors.Is(err, storage.ErrNoSnapshot) {
		seeded := make([]Transaction, len(seedTransactions))
		copy(seeded, seedTransactions)
		return seeded, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load transactions: %w", err)
	}
	return transactions, nil
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, userId int, transactions []Transaction) error {
	if err := r.snapshots.Save(ctx, userId, collectionName, transactions); err != nil {
		return fmt.Errorf("could not store transactions: %w", err)
	}
	return nil
}
