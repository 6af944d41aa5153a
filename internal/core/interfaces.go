package core

import (
	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
)

type (
	// Network is the read-only view of the registry used by the console.
	Network interface {
		model.BankFinder
		FindATM(id string) (*model.ATM, error)
		Banks() []*model.Bank
		ATMs() []*model.ATM
	}
)
