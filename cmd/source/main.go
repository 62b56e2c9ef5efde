package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"crossgate/internal/audit/noop"
	auditpg "crossgate/internal/audit/postgres"
	"crossgate/internal/config"
	"crossgate/internal/handler"
	"crossgate/internal/identity"
	"crossgate/internal/identity/provider"
	"crossgate/internal/logger"
	"crossgate/internal/port"
	"crossgate/internal/router"
	"crossgate/internal/service"

	"github.com/jmoiron/sqlx"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	// The provider client is constructed exactly once and injected;
	// missing service-account configuration fails startup here.
	providerClient, err := provider.New(cfg.Provider)
	if err != nil {
		return fmt.Errorf("failed to initialize identity provider client: %w", err)
	}
	verifier := identity.NewVerifier(providerClient, providerClient)

	var auditDB *sqlx.DB
	var recorder port.AuditRecorder = noop.NewRecorder()
	if cfg.Audit.Enabled {
		auditDB, err = auditpg.NewDB(&cfg.Audit)
		if err != nil {
			return fmt.Errorf("failed to connect to audit store: %w", err)
		}
		defer auditDB.Close()
		recorder = auditpg.NewRecorder(auditDB)
	}

	exchangeSvc := service.NewExchangeService(verifier, recorder, cfg.Provider, zlog)

	exchangeH := handler.NewExchangeHandler(exchangeSvc, zlog)
	healthH := handler.NewHealthHandler(auditDB)

	r := router.Source(exchangeH, healthH, cfg.CORS, zlog)

	zlog.Info("source app starting", zap.String("port", cfg.Source.Port))
	if err := r.Run(cfg.Source.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
