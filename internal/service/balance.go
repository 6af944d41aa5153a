package service

import (
	"context"

	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
	"github.com/shopspring/decimal"
)

type BalanceService interface {
	GetBalance(ctx context.Context, account *model.Account) (decimal.Decimal, error)
}

type balanceService struct{}

func NewBalanceService() BalanceService {
	return &balanceService{}
}

func (s *balanceService) GetBalance(ctx context.Context, account *model.Account) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	return account.Balance(), nil
}
