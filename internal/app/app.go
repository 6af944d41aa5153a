package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Evgen-Mutagen/go-atm-network/internal/controller"
	"github.com/Evgen-Mutagen/go-atm-network/internal/repository"
	"github.com/Evgen-Mutagen/go-atm-network/internal/service"
	"go.uber.org/zap"
)

type App struct {
	cfg      *Config
	Logger   *zap.Logger
	Registry *repository.Registry
	Session  *controller.SessionController
}

// New seeds the network with cards issued at clock() and wires the console.
func New(cfg *Config, logger *zap.Logger, clock func() time.Time) (*App, error) {
	if clock == nil {
		clock = time.Now
	}

	app := &App{
		cfg:      cfg,
		Logger:   logger,
		Registry: repository.NewRegistry(),
	}

	if err := repository.Seed(app.Registry, clock(), cfg.CardValidityYears); err != nil {
		return nil, fmt.Errorf("seed network: %w", err)
	}
	app.Logger.Info("Network initialized",
		zap.Int("banks", len(app.Registry.Banks())),
		zap.Int("atms", len(app.Registry.ATMs())))

	authService := service.NewAuthService(app.Registry, clock, logger)
	withdrawalService := service.NewWithdrawalService(logger)
	balanceService := service.NewBalanceService()

	app.Session = controller.NewSessionController(app.Registry, authService, withdrawalService, balanceService, logger)
	return app, nil
}

func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	return a.Session.Run(ctx, in, out)
}
