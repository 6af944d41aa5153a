package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCardValidityYears is how long a freshly issued card stays valid.
const DefaultCardValidityYears = 10

// Card is owned by exactly one Account and shares its number.
type Card struct {
	number     string
	expiration time.Time
}

func (c Card) Number() string {
	return c.number
}

func (c Card) Expiration() time.Time {
	return c.expiration
}

// IsExpired reports whether the expiration date lies before the calendar day of asOf.
// A card expiring today is still usable.
func (c Card) IsExpired(asOf time.Time) bool {
	return c.expiration.Before(dateOf(asOf))
}

// CardExpiration returns the expiration date of a card issued at issued and valid for years.
func CardExpiration(issued time.Time, years int) time.Time {
	return dateOf(issued).AddDate(years, 0, 0)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type Account struct {
	number   string
	password string
	balance  decimal.Decimal
	card     Card
}

// NewAccount creates an account together with its card.
func NewAccount(number, password string, balance decimal.Decimal, cardExpiration time.Time) (*Account, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("account %s: negative opening balance %s: %w", number, balance, ErrInvalidAmount)
	}
	return &Account{
		number:   number,
		password: password,
		balance:  balance,
		card:     Card{number: number, expiration: dateOf(cardExpiration)},
	}, nil
}

func (a *Account) Number() string {
	return a.number
}

func (a *Account) Password() string {
	return a.password
}

func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Card returns a copy of the account's card.
func (a *Account) Card() Card {
	return a.card
}

// RenewCard pushes the card's expiration date years further out.
func (a *Account) RenewCard(years int) {
	a.card.expiration = a.card.expiration.AddDate(years, 0, 0)
}

// Withdraw deducts amount from the balance and returns the new balance.
// The balance is left untouched on error.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return a.balance, fmt.Errorf("withdraw %s: %w", amount, ErrInvalidAmount)
	}
	if amount.GreaterThan(a.balance) {
		return a.balance, ErrInsufficientBalance
	}
	a.balance = a.balance.Sub(amount)
	return a.balance, nil
}

// VerifyPassword is an exact, case-sensitive comparison.
func (a *Account) VerifyPassword(candidate string) bool {
	return candidate == a.password
}
