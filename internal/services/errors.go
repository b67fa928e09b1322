package services

import "errors"

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrDuplicateName          = errors.New("user already exists")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrSameAccount            = errors.New("cannot transfer to the same account")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrNegativeBalance        = errors.New("initial balance must not be negative")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)
