package ledger

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be a positive value")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownKind       = errors.New("unknown account kind")
)
