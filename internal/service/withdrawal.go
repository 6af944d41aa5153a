package service

import (
	"context"
	"fmt"

	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WithdrawalService interface {
	Withdraw(ctx context.Context, atm *model.ATM, account *model.Account, amount decimal.Decimal) (decimal.Decimal, error)
}

type withdrawalService struct {
	logger *zap.Logger
}

func NewWithdrawalService(logger *zap.Logger) WithdrawalService {
	return &withdrawalService{logger: logger}
}

// Withdraw returns the account balance after the attempt, whether it succeeded or not.
func (s *withdrawalService) Withdraw(ctx context.Context, atm *model.ATM, account *model.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return account.Balance(), err
	}

	balance, err := atm.Withdraw(account, amount)
	if err != nil {
		return balance, fmt.Errorf("withdraw %s at %s from %s: %w", amount, atm.ID(), account.Number(), err)
	}

	s.logger.Debug("Withdrawal completed",
		zap.String("atm_id", atm.ID()),
		zap.String("account", account.Number()),
		zap.Stringer("amount", amount),
		zap.Stringer("balance", balance))
	return balance, nil
}
