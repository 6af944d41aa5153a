package controller

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/Evgen-Mutagen/go-atm-network/internal/model"
	"github.com/Evgen-Mutagen/go-atm-network/internal/repository"
	"github.com/Evgen-Mutagen/go-atm-network/internal/service"
	"github.com/Evgen-Mutagen/go-atm-network/internal/util/money"
)

const farewell = "Thank you for visiting the ATM Network System!\nWe hope to see you again soon!\n"

type SessionSuite struct {
	suite.Suite
	now        time.Time
	registry   *repository.Registry
	controller *SessionController
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.now = time.Date(2026, time.October, 17, 10, 30, 0, 0, time.UTC)
	s.registry = repository.NewRegistry()
	s.Require().NoError(repository.Seed(s.registry, s.now, model.DefaultCardValidityYears))
	s.controller = s.newController(s.registry)
}

func (s *SessionSuite) newController(network *repository.Registry) *SessionController {
	logger := zaptest.NewLogger(s.T())
	return NewSessionController(
		network,
		service.NewAuthService(network, func() time.Time { return s.now }, logger),
		service.NewWithdrawalService(logger),
		service.NewBalanceService(),
		logger,
	)
}

func (s *SessionSuite) run(lines ...string) string {
	var out bytes.Buffer
	input := strings.NewReader(strings.Join(lines, "\n") + "\n")
	s.Require().NoError(s.controller.Run(context.Background(), input, &out))
	return out.String()
}

// session returns the output from the first ATM prompt on.
func (s *SessionSuite) session(lines ...string) string {
	out := s.run(lines...)
	i := strings.Index(out, "Chose an ATM: \n")
	s.Require().GreaterOrEqual(i, 0)
	return out[i:]
}

func (s *SessionSuite) balance(bankID, card string) string {
	bank, err := s.registry.FindBank(bankID)
	s.Require().NoError(err)
	account, ok := bank.Account(card)
	s.Require().True(ok)
	return account.Balance().StringFixed(2)
}

func (s *SessionSuite) assertInOrder(out string, parts ...string) {
	rest := out
	for _, p := range parts {
		i := strings.Index(rest, p)
		if !s.GreaterOrEqual(i, 0, "missing %q in remaining output:\n%s", p, rest) {
			return
		}
		rest = rest[i+len(p):]
	}
}

func (s *SessionSuite) TestStartupListing() {
	out := s.run("quit")

	s.True(strings.HasPrefix(out, "Welcome to the ATM Network System!\nBank 111 Accounts\n"))
	s.Contains(out, "Account #: 111-000001, Password: 1cust1, Expiration Date: 17 October 2036\n")
	s.Contains(out, "Account #: 222-000005, Password: 2cust5, Expiration Date: 17 October 2036\n")
	s.assertInOrder(out,
		"Bank 111 Accounts", "111-000005", "\n\nBank 222 Accounts", "222-000005",
		"\n\n\nATMs Available\n",
		"ATM111-1\n      This ATM can withdraw a maximum of $2500.00\n\n\n",
		"ATM111-2\n      This ATM can withdraw a maximum of $5000.00\n",
		"ATM222-1\n      This ATM can withdraw a maximum of $1500.00\n",
		"ATM222-2\n      This ATM can withdraw a maximum of $10000.00\n",
		"Chose an ATM: \n",
	)
	s.True(strings.HasSuffix(out, "Chose an ATM: \n"+farewell))
}

func (s *SessionSuite) TestSuccessfulWithdrawal() {
	out := s.session("ATM111-1", "111-000001", "1cust1", "500.00", "quit")

	s.assertInOrder(out,
		"Chose an ATM: \n",
		"Enter your card number\n",
		"Authorizing card\nEnter your password\n",
		"Authorizing accepted\n",
		"\nCurrent Balance is $100000.00\nHow much would you like to withdraw?\n",
		"Transaction successful! $500.00 deducted from account.\nNew balance is $99500.00\n",
		"\nCurrent Balance is $99500.00\nHow much would you like to withdraw?\n",
		farewell,
	)
	s.Equal("99500.00", s.balance("111", "111-000001"))
}

func (s *SessionSuite) TestOverTransactionLimit() {
	out := s.session("ATM111-1", "111-000001", "1cust1", "3000.00", "quit")

	s.assertInOrder(out,
		"Transaction could not be completed.\nOver Transaction Limit\n\nPlease enter a new amount\n",
		"Current Balance is $100000.00\n",
	)
	s.NotContains(out, "Transaction successful!")
	s.Equal("100000.00", s.balance("111", "111-000001"))
}

func (s *SessionSuite) TestInsufficientBalanceAfterWithdrawal() {
	out := s.session("ATM222-1", "222-000004", "2cust4", "1500.00", "quit")
	s.Contains(out, "New balance is $3500.00\n")

	out = s.session("ATM222-2", "222-000004", "2cust4", "4000.00", "quit")
	s.assertInOrder(out,
		"Current Balance is $3500.00\n",
		"Transaction could not be completed.\nNot enough balance\n\nPlease enter a new amount\n",
		"Current Balance is $3500.00\n",
	)
	s.Equal("3500.00", s.balance("222", "222-000004"))
}

func (s *SessionSuite) TestLimitIsCheckedBeforeBalance() {
	out := s.session("ATM222-1", "222-000004", "2cust4", "1500", "4000", "quit")

	s.Contains(out, "New balance is $3500.00\n")
	s.Contains(out, "Over Transaction Limit\n")
	s.NotContains(out, "Not enough balance")
	s.Equal("3500.00", s.balance("222", "222-000004"))
}

func (s *SessionSuite) TestUnknownATM() {
	out := s.session("ATM999-9", "ATM111-1", "111-000001", "1cust1", "quit")

	s.assertInOrder(out,
		"Chose an ATM: \nATM not found\n\nChose an ATM: \nEnter your card number\n",
		"Authorizing accepted\n",
		farewell,
	)
}

func (s *SessionSuite) TestUnknownCard() {
	out := s.session("ATM111-1", "222-000001", "quit")

	s.Equal("Chose an ATM: \nEnter your card number\nCard not found or is expired\n\nChose an ATM: \n"+farewell, out)
}

func (s *SessionSuite) TestExpiredCard() {
	s.now = s.now.AddDate(model.DefaultCardValidityYears, 0, 1)

	out := s.session("ATM111-1", "111-000001", "quit")

	s.Contains(out, "Card not found or is expired\n")
	s.NotContains(out, "Enter your password")
}

func (s *SessionSuite) TestPasswordRetry() {
	out := s.session("ATM111-1", "111-000001", "wrong", "1cust1", "quit")

	s.assertInOrder(out,
		"Enter your password\nInvalid Password. Try Again\n\nAuthorizing accepted\n",
		"Current Balance is $100000.00\n",
	)
}

func (s *SessionSuite) TestPasswordRejectedTwice() {
	out := s.session("ATM111-1", "111-000001", "wrong", "1CUST1", "quit")

	s.assertInOrder(out,
		"Enter your password\nInvalid Password. Try Again\n\nInvalid Password.\n\nChose an ATM: \n",
		farewell,
	)
	s.NotContains(out, "Authorizing accepted")
	s.Equal("100000.00", s.balance("111", "111-000001"))
}

func (s *SessionSuite) TestInvalidAmount() {
	out := s.session("ATM111-1", "111-000001", "1cust1", "abc", "-20", "quit")

	s.assertInOrder(out,
		"Current Balance is $100000.00\nHow much would you like to withdraw?\nInvalid amount\n",
		"Current Balance is $100000.00\nHow much would you like to withdraw?\nInvalid amount\n",
		"Current Balance is $100000.00\nHow much would you like to withdraw?\n"+farewell,
	)
	s.Equal("100000.00", s.balance("111", "111-000001"))
}

func (s *SessionSuite) TestBalancesCarryOverBetweenRuns() {
	out := s.session(
		"ATM111-2", "111-000003", "1cust3", "400", "3001", "quit",
	)
	s.Contains(out, "New balance is $3000.00\n")
	s.Contains(out, "Not enough balance\n")

	out = s.session(
		"ATM111-2", "111-000002", "1cust2", "5000",
	)
	s.Contains(out, "New balance is $51700.00\n")
	s.True(strings.HasSuffix(out, farewell), "end of input ends the session")
	s.Equal("3000.00", s.balance("111", "111-000003"))
	s.Equal("51700.00", s.balance("111", "111-000002"))
}

func (s *SessionSuite) TestEndOfInputAtEveryPrompt() {
	inputs := [][]string{
		{},
		{"ATM111-1"},
		{"ATM111-1", "111-000001"},
		{"ATM111-1", "111-000001", "nope"},
		{"ATM111-1", "111-000001", "1cust1"},
	}
	for _, lines := range inputs {
		var out bytes.Buffer
		err := s.controller.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")), &out)
		s.Require().NoError(err, "%q", lines)
		s.True(strings.HasSuffix(out.String(), farewell), "%q", lines)
	}
}

func (s *SessionSuite) TestMissingBankPutsATMOutOfService() {
	r := repository.NewRegistry()
	atm, err := model.NewATM("333", "ATM333-1", money.MustParse("100"))
	s.Require().NoError(err)
	r.AddATM(atm)
	s.controller = s.newController(r)

	var out bytes.Buffer
	err = s.controller.Run(context.Background(), strings.NewReader("ATM333-1\n333-000001\nquit\n"), &out)
	s.Require().NoError(err)
	s.Contains(out.String(), "ATM is out of service\n\nChose an ATM: \n")
}

func TestRunReturnsOnQuitWhileInputStaysOpen(t *testing.T) {
	r := repository.NewRegistry()
	require.NoError(t, repository.Seed(r, time.Now(), model.DefaultCardValidityYears))
	logger := zaptest.NewLogger(t)
	c := NewSessionController(r,
		service.NewAuthService(r, time.Now, logger),
		service.NewWithdrawalService(logger),
		service.NewBalanceService(),
		logger)

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background(), pr, &out) }()

	_, err := pw.Write([]byte("quit\n"))
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run blocked on the open input after quit")
	}
	assert.True(t, strings.HasSuffix(out.String(), farewell))
}

func TestRunStopsOnCancel(t *testing.T) {
	r := repository.NewRegistry()
	require.NoError(t, repository.Seed(r, time.Now(), model.DefaultCardValidityYears))
	logger := zaptest.NewLogger(t)
	c := NewSessionController(r,
		service.NewAuthService(r, time.Now, logger),
		service.NewWithdrawalService(logger),
		service.NewBalanceService(),
		logger)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, pr, &out) }()

	_, err := pw.Write([]byte("ATM111-1\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.True(t, strings.HasSuffix(out.String(), farewell))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRunReportsWriteErrors(t *testing.T) {
	r := repository.NewRegistry()
	require.NoError(t, repository.Seed(r, time.Now(), model.DefaultCardValidityYears))
	logger := zaptest.NewLogger(t)
	c := NewSessionController(r,
		service.NewAuthService(r, time.Now, logger),
		service.NewWithdrawalService(logger),
		service.NewBalanceService(),
		logger)

	err := c.Run(context.Background(), strings.NewReader("ATM111-1\n"), failingWriter{})
	assert.EqualError(t, err, "broken pipe")
}
