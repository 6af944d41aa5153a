package controller

import (
	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
	"github.com/Evgen-Mutagen/go-atm-network/internal/util/money"
)

const expirationLayout = "2 January 2006"

func (c *console) printBankAccounts(bank *model.Bank) {
	c.println("Bank " + bank.ID() + " Accounts")
	for _, a := range bank.Accounts() {
		c.printf("Account #: %s, Password: %s, Expiration Date: %s\n",
			a.Number(), a.Password(), a.Card().Expiration().Format(expirationLayout))
	}
}

func (c *console) printATM(atm *model.ATM) {
	c.println(atm.ID())
	c.println("      This ATM can withdraw a maximum of " + money.Format(atm.TransactionLimit()))
	c.println()
}

func (c *console) printNetwork(banks []*model.Bank, atms []*model.ATM) {
	for _, b := range banks {
		c.printBankAccounts(b)
		c.println()
	}

	c.println()
	c.println("ATMs Available")
	for _, atm := range atms {
		c.printATM(atm)
		c.println()
	}
}
