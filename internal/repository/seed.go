package repository

import (
	"fmt"
	"time"

	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
	"github.com/Evgen-Mutagen/go-atm-network/internal/util/money"
)

type seedAccount struct {
	password string
	balance  string
}

type seedATM struct {
	suffix string
	limit  string
}

type seedBank struct {
	id       string
	atms     []seedATM
	accounts []seedAccount
}

var network = []seedBank{
	{
		id:   "111",
		atms: []seedATM{{"1", "2500.00"}, {"2", "5000.00"}},
		accounts: []seedAccount{
			{"1cust1", "100000.00"},
			{"1cust2", "56700.00"},
			{"1cust3", "3400.00"},
			{"1cust4", "1000.00"},
			{"1cust5", "1000000.00"},
		},
	},
	{
		id:   "222",
		atms: []seedATM{{"1", "1500.00"}, {"2", "10000.00"}},
		accounts: []seedAccount{
			{"2cust1", "20000.00"},
			{"2cust2", "56900.00"},
			{"2cust3", "3900.00"},
			{"2cust4", "5000.00"},
			{"2cust5", "5000000.00"},
		},
	},
}

// Seed fills the registry with the demo network. Cards are issued at issued
// and stay valid for cardValidityYears.
func Seed(r *Registry, issued time.Time, cardValidityYears int) error {
	expiration := model.CardExpiration(issued, cardValidityYears)

	for _, sb := range network {
		bank := model.NewBank(sb.id)
		for i, sa := range sb.accounts {
			number := fmt.Sprintf("%s-%06d", sb.id, i+1)
			account, err := model.NewAccount(number, sa.password, money.MustParse(sa.balance), expiration)
			if err != nil {
				return fmt.Errorf("seed account %s: %w", number, err)
			}
			bank.AddAccount(account)
		}
		r.AddBank(bank)

		for _, sm := range sb.atms {
			atm, err := model.NewATM(sb.id, "ATM"+sb.id+"-"+sm.suffix, money.MustParse(sm.limit))
			if err != nil {
				return fmt.Errorf("seed atm: %w", err)
			}
			r.AddATM(atm)
		}
	}

	return nil
}
