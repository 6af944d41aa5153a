package model

type Bank struct {
	id       string
	accounts []*Account
}

func NewBank(id string) *Bank {
	return &Bank{id: id}
}

func (b *Bank) ID() string {
	return b.id
}

// AddAccount appends without a duplicate check; the first account added wins on lookup.
func (b *Bank) AddAccount(a *Account) {
	b.accounts = append(b.accounts, a)
}

// Account finds an account by its card number.
func (b *Bank) Account(cardNumber string) (*Account, bool) {
	for _, a := range b.accounts {
		if a.Card().Number() == cardNumber {
			return a, true
		}
	}
	return nil, false
}

// Accounts returns the accounts in insertion order.
func (b *Bank) Accounts() []*Account {
	out := make([]*Account, len(b.accounts))
	copy(out, b.accounts)
	return out
}
