package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BankFinder resolves a bank by its identifier.
type BankFinder interface {
	FindBank(id string) (*Bank, error)
}

type ATM struct {
	id               string
	bankID           string
	transactionLimit decimal.Decimal
	bank             *Bank
}

func NewATM(bankID, id string, transactionLimit decimal.Decimal) (*ATM, error) {
	atm := &ATM{id: id, bankID: bankID}
	if err := atm.SetTransactionLimit(transactionLimit); err != nil {
		return nil, err
	}
	return atm, nil
}

func (atm *ATM) ID() string {
	return atm.id
}

func (atm *ATM) BankID() string {
	return atm.bankID
}

func (atm *ATM) TransactionLimit() decimal.Decimal {
	return atm.transactionLimit
}

func (atm *ATM) SetTransactionLimit(limit decimal.Decimal) error {
	if !limit.IsPositive() {
		return fmt.Errorf("atm %s: transaction limit %s must be positive: %w", atm.id, limit, ErrInvalidAmount)
	}
	atm.transactionLimit = limit
	return nil
}

// Bank resolves the owning bank on first use and caches it.
func (atm *ATM) Bank(finder BankFinder) (*Bank, error) {
	if atm.bank == nil {
		bank, err := finder.FindBank(atm.bankID)
		if err != nil {
			return nil, fmt.Errorf("atm %s: %w", atm.id, err)
		}
		atm.bank = bank
	}
	return atm.bank, nil
}

// ValidateAccount returns the account only if it exists in the ATM's bank
// and its card has not expired as of now.
func (atm *ATM) ValidateAccount(finder BankFinder, cardNumber string, now time.Time) (*Account, error) {
	bank, err := atm.Bank(finder)
	if err != nil {
		return nil, err
	}
	account, ok := bank.Account(cardNumber)
	if !ok {
		return nil, fmt.Errorf("bank %s has no account %q: %w", bank.ID(), cardNumber, ErrAccountNotFoundOrExpired)
	}
	if card := account.Card(); card.IsExpired(now) {
		return nil, fmt.Errorf("card %s expired on %s: %w",
			cardNumber, card.Expiration().Format(time.DateOnly), ErrAccountNotFoundOrExpired)
	}
	return account, nil
}

func (atm *ATM) VerifyPassword(account *Account, candidate string) bool {
	return account.VerifyPassword(candidate)
}

// Withdraw enforces the transaction limit before the account applies its balance check.
func (atm *ATM) Withdraw(account *Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.GreaterThan(atm.transactionLimit) {
		return account.Balance(), ErrOverTransactionLimit
	}
	return account.Withdraw(amount)
}
