package controller

import (
	"context"
	"errors"
	"io"

	"github.com/Evgen-Mutagen/go-atm-network/internal/core"
	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
	"github.com/Evgen-Mutagen/go-atm-network/internal/service"
	"github.com/Evgen-Mutagen/go-atm-network/internal/util/money"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	quitCommand      = "quit"
	passwordAttempts = 2
)

type state int

const (
	stateChoosingATM state = iota
	stateEnteringCardNumber
	stateEnteringPassword
	stateWithdrawing
	stateTerminated
)

func (s state) String() string {
	switch s {
	case stateChoosingATM:
		return "choosing_atm"
	case stateEnteringCardNumber:
		return "entering_card_number"
	case stateEnteringPassword:
		return "entering_password"
	case stateWithdrawing:
		return "withdrawing"
	case stateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type SessionController struct {
	network           core.Network
	authService       service.AuthService
	withdrawalService service.WithdrawalService
	balanceService    service.BalanceService
	logger            *zap.Logger
}

func NewSessionController(
	network core.Network,
	authService service.AuthService,
	withdrawalService service.WithdrawalService,
	balanceService service.BalanceService,
	logger *zap.Logger,
) *SessionController {
	return &SessionController{
		network:           network,
		authService:       authService,
		withdrawalService: withdrawalService,
		balanceService:    balanceService,
		logger:            logger,
	}
}

// session is the state of one run of the console loop.
type session struct {
	*SessionController
	ctx     context.Context
	in      *lineReader
	out     *console
	logger  *zap.Logger
	atm     *model.ATM
	account *model.Account
	err     error
}

// Run prints the network overview and serves customers until "quit", end of
// input or cancellation of ctx. Domain errors are reported on out and never
// returned; the returned error is an I/O failure or ctx.Err().
func (c *SessionController) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s := &session{
		SessionController: c,
		ctx:               ctx,
		in:                newLineReader(in),
		out:               &console{w: out},
		logger:            c.logger.With(zap.String("session_id", uuid.NewString())),
	}
	defer s.in.close()

	s.logger.Info("Session started")

	s.out.println("Welcome to the ATM Network System!")
	s.out.printNetwork(c.network.Banks(), c.network.ATMs())

	for st := stateChoosingATM; st != stateTerminated; {
		next := s.step(st)
		if next != st {
			s.logger.Debug("Session state changed",
				zap.Stringer("from", st),
				zap.Stringer("to", next))
		}
		st = next
	}

	s.out.println("Thank you for visiting the ATM Network System!")
	s.out.println("We hope to see you again soon!")

	if s.err == nil {
		s.err = s.out.err
	}
	if s.err != nil {
		s.logger.Warn("Session ended abnormally", zap.Error(s.err))
		return s.err
	}
	s.logger.Info("Session finished")
	return nil
}

func (s *session) step(st state) state {
	if s.out.err != nil {
		return stateTerminated
	}

	switch st {
	case stateChoosingATM:
		return s.chooseATM()
	case stateEnteringCardNumber:
		return s.enterCardNumber()
	case stateEnteringPassword:
		return s.enterPassword()
	case stateWithdrawing:
		return s.withdraw()
	default:
		return stateTerminated
	}
}

// readLine returns false when the session has to terminate.
func (s *session) readLine() (string, bool) {
	line, err := s.in.next(s.ctx)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return "", false
	}
	return line, true
}

func (s *session) report(msg string) {
	s.out.println(msg)
	s.out.println()
}

func (s *session) chooseATM() state {
	s.atm, s.account = nil, nil

	s.out.println("Chose an ATM: ")
	atmID, ok := s.readLine()
	if !ok || atmID == quitCommand {
		return stateTerminated
	}

	atm, err := s.network.FindATM(atmID)
	if err != nil {
		s.logger.Info("ATM not found", zap.String("atm_id", atmID))
		s.report("ATM not found")
		return stateChoosingATM
	}

	s.atm = atm
	return stateEnteringCardNumber
}

func (s *session) enterCardNumber() state {
	s.out.println("Enter your card number")
	cardNumber, ok := s.readLine()
	if !ok {
		return stateTerminated
	}

	account, err := s.authService.Authorize(s.ctx, s.atm, cardNumber)
	switch {
	case err == nil:
		s.account = account
		return stateEnteringPassword
	case errors.Is(err, model.ErrAccountNotFoundOrExpired):
		s.logger.Info("Card rejected",
			zap.String("atm_id", s.atm.ID()),
			zap.Error(err))
		s.report("Card not found or is expired")
	case errors.Is(err, model.ErrBankNotFound):
		s.logger.Error("ATM is not attached to a known bank",
			zap.String("atm_id", s.atm.ID()),
			zap.String("bank_id", s.atm.BankID()),
			zap.Error(err))
		s.report("ATM is out of service")
	default:
		s.err = err
		return stateTerminated
	}
	return stateChoosingATM
}

func (s *session) enterPassword() state {
	s.out.println("Authorizing card")
	s.out.println("Enter your password")

	for attempt := 1; attempt <= passwordAttempts; attempt++ {
		password, ok := s.readLine()
		if !ok {
			return stateTerminated
		}

		err := s.authService.VerifyPassword(s.ctx, s.atm, s.account, password)
		if err == nil {
			s.out.println("Authorizing accepted")
			s.logger.Info("Card authorized",
				zap.String("atm_id", s.atm.ID()),
				zap.String("account", s.account.Number()))
			return stateWithdrawing
		}
		if !errors.Is(err, model.ErrInvalidPassword) {
			s.err = err
			return stateTerminated
		}

		s.logger.Info("Invalid password",
			zap.String("atm_id", s.atm.ID()),
			zap.String("account", s.account.Number()),
			zap.Int("attempt", attempt))
		if attempt < passwordAttempts {
			s.report("Invalid Password. Try Again")
		}
	}

	s.logger.Warn("Password attempts exhausted",
		zap.String("atm_id", s.atm.ID()),
		zap.String("account", s.account.Number()))
	s.report("Invalid Password.")
	return stateChoosingATM
}

func (s *session) withdraw() state {
	balance, err := s.balanceService.GetBalance(s.ctx, s.account)
	if err != nil {
		s.err = err
		return stateTerminated
	}

	s.out.println()
	s.out.println("Current Balance is " + money.Format(balance))
	s.out.println("How much would you like to withdraw?")
	input, ok := s.readLine()
	if !ok || input == quitCommand {
		return stateTerminated
	}

	amount, err := money.Parse(input)
	if err != nil {
		s.logger.Debug("Invalid amount", zap.Error(err))
		s.out.println("Invalid amount")
		return stateWithdrawing
	}

	balance, err = s.withdrawalService.Withdraw(s.ctx, s.atm, s.account, amount)
	switch {
	case err == nil:
		s.out.println("Transaction successful! " + money.Format(amount) + " deducted from account.")
		s.out.println("New balance is " + money.Format(balance))
	case errors.Is(err, model.ErrOverTransactionLimit):
		s.rejectWithdrawal("Over Transaction Limit", err)
	case errors.Is(err, model.ErrInsufficientBalance):
		s.rejectWithdrawal("Not enough balance", err)
	case errors.Is(err, model.ErrInvalidAmount):
		// money.Parse already refuses these; the service guards its other callers.
		s.out.println("Invalid amount")
	default:
		s.err = err
		return stateTerminated
	}
	return stateWithdrawing
}

func (s *session) rejectWithdrawal(reason string, err error) {
	s.logger.Info("Withdrawal rejected",
		zap.String("atm_id", s.atm.ID()),
		zap.String("account", s.account.Number()),
		zap.Error(err))
	s.out.println("Transaction could not be completed.")
	s.report(reason)
	s.out.println("Please enter a new amount")
}
