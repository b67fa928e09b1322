package models

import "fmt"

// TransactionType is stored and rendered as its integer code.
type TransactionType int16

const (
	TransactionDeposit  TransactionType = 1
	TransactionWithdraw TransactionType = 2
	TransactionTransfer TransactionType = 3
)

var transactionTypeLabels = map[TransactionType]string{
	TransactionDeposit:  "DEPOSIT",
	TransactionWithdraw: "WITHDRAW",
	TransactionTransfer: "TRANSFER",
}

func (t TransactionType) String() string {
	if label, ok := transactionTypeLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("TransactionType(%d)", int16(t))
}

// Valid reports whether t is one of the three ledger operations.
func (t TransactionType) Valid() bool {
	_, ok := transactionTypeLabels[t]
	return ok
}

// ParseTransactionType maps a label such as "DEPOSIT" to its type.
func ParseTransactionType(label string) (TransactionType, error) {
	for t, l := range transactionTypeLabels {
		if l == label {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction type %q", label)
}

// LedgerCommand is one balance-mutating request. ToID is only read for
// transfers.
type LedgerCommand struct {
	Type   TransactionType
	UserID int64
	ToID   int64
	Amount int64
}
