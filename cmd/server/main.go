package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/handler"
	"github.com/mmynk/fintrack/internal/router"
	"github.com/mmynk/fintrack/internal/service"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/storage/memory"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
	"github.com/mmynk/fintrack/pkg/logging"
)

// backend is everything the services need from a store implementation.
type backend interface {
	storage.Store
	auth.UserStorage
	service.UserLookup
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func run(cfg *config.Config) error {
	store, err := openStore(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher, err := openPublisher(cfg.AMQP)
	if err != nil {
		return err
	}
	defer publisher.Close()

	location := cfg.Location()
	deps := service.Deps{
		Ledger:   storage.NewLedger(store),
		Locks:    service.NewUserLocks(),
		Events:   publisher,
		Location: location,
	}
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.TokenDuration())
	authenticator := auth.NewPasswordAuthenticator(store, cfg.Security.BcryptCost)

	h := &handler.Handler{
		Auth:         service.NewAuthService(deps, authenticator, jwtManager),
		Transactions: service.NewTransactionService(deps),
		Accounts:     service.NewAccountService(deps),
		Categories:   service.NewCategoryService(deps),
		Budgets:      service.NewBudgetService(deps),
		Profiles:     service.NewProfileService(deps, store),
		Analytics:    service.NewAnalyticsService(deps),
	}
	engine := router.SetupRouter(cfg.Server.Mode, h, jwtManager)

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        h2c.NewHandler(engine, &http2.Server{}),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", srv.Addr, "mode", cfg.Server.Mode, "timezone", location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(cfg config.DatabaseConfig) (backend, error) {
	if cfg.Backend == "memory" {
		slog.Warn("Using in-memory storage; data is lost on restart")
		return memory.New(), nil
	}
	store, err := sqlite.New(cfg.Path)
	if err != nil {
		return nil, err
	}
	slog.Info("Storage initialized", "database", cfg.Path)
	return store, nil
}

func openPublisher(cfg config.AMQPConfig) (events.Publisher, error) {
	if cfg.URL == "" {
		return events.Nop{}, nil
	}
	publisher, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		return nil, err
	}
	slog.Info("Publishing ledger events", "exchange", cfg.Exchange)
	return publisher, nil
}
