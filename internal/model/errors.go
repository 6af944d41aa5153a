package model

import "errors"

var (
	ErrATMNotFound              = errors.New("ATM not found")
	ErrBankNotFound             = errors.New("bank not found")
	ErrAccountNotFoundOrExpired = errors.New("card not found or is expired")
	ErrInvalidPassword          = errors.New("invalid password")
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrOverTransactionLimit     = errors.New("over transaction limit")
	ErrInsufficientBalance      = errors.New("not enough balance")
)
