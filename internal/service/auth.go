package service

import (
	"context"
	"time"

	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
	"go.uber.org/zap"
)

type AuthService interface {
	Authorize(ctx context.Context, atm *model.ATM, cardNumber string) (*model.Account, error)
	VerifyPassword(ctx context.Context, atm *model.ATM, account *model.Account, password string) error
}

type authService struct {
	banks  model.BankFinder
	clock  func() time.Time
	logger *zap.Logger
}

func NewAuthService(banks model.BankFinder, clock func() time.Time, logger *zap.Logger) AuthService {
	if clock == nil {
		clock = time.Now
	}
	return &authService{
		banks:  banks,
		clock:  clock,
		logger: logger,
	}
}

// Authorize looks the card up in the ATM's bank and rejects expired cards.
func (s *authService) Authorize(ctx context.Context, atm *model.ATM, cardNumber string) (*model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	account, err := atm.ValidateAccount(s.banks, cardNumber, s.clock())
	if err != nil {
		s.logger.Debug("Card rejected",
			zap.String("atm_id", atm.ID()),
			zap.String("card_number", cardNumber),
			zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (s *authService) VerifyPassword(ctx context.Context, atm *model.ATM, account *model.Account, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !atm.VerifyPassword(account, password) {
		return model.ErrInvalidPassword
	}
	return nil
}
