package registry

import "errors"

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountExists    = errors.New("account already exists")
	ErrInvalidAccountID = errors.New("account id must be exactly 10 digits")
	ErrInvalidOwnerName = errors.New("owner name must be at least two alphabetic words")
	ErrNegativeBalance  = errors.New("initial balance cannot be negative")
	ErrSelfTransfer     = errors.New("cannot transfer to the same account")
)
