package repository

import (
	"fmt"

	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
)

// Registry is the catalog of every bank and ATM in the network.
// It is filled once at startup and only read afterwards.
type Registry struct {
	banks []*model.Bank
	atms  []*model.ATM
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) AddBank(bank *model.Bank) {
	r.banks = append(r.banks, bank)
}

func (r *Registry) AddATM(atm *model.ATM) {
	r.atms = append(r.atms, atm)
}

func (r *Registry) FindBank(id string) (*model.Bank, error) {
	for _, b := range r.banks {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("bank %q: %w", id, model.ErrBankNotFound)
}

func (r *Registry) FindATM(id string) (*model.ATM, error) {
	for _, atm := range r.atms {
		if atm.ID() == id {
			return atm, nil
		}
	}
	return nil, fmt.Errorf("atm %q: %w", id, model.ErrATMNotFound)
}

func (r *Registry) Banks() []*model.Bank {
	out := make([]*model.Bank, len(r.banks))
	copy(out, r.banks)
	return out
}

func (r *Registry) ATMs() []*model.ATM {
	out := make([]*model.ATM, len(r.atms))
	copy(out, r.atms)
	return out
}
