package models

import (
	"time"
)

// Transaction is an immutable ledger row filed under UserID.
// FromID and ToID are only set for transfers.
type Transaction struct {
	ID        int64           `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    int64           `json:"amount"`
	UserID    int64           `json:"userId"`
	FromID    *int64          `json:"fromId"`
	ToID      *int64          `json:"toId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TransactionView is a transaction with its accounts resolved.
type TransactionView struct {
	Transaction
	User *Account `json:"user"`
	From *Account `json:"from"`
	To   *Account `json:"to"`
}

// TransactionFilter selects the rows filed under UserID, optionally bounded
// by creation time. Both bounds are inclusive.
type TransactionFilter struct {
	UserID      int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
