package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"crossgate/internal/audit/noop"
	auditpg "crossgate/internal/audit/postgres"
	"crossgate/internal/config"
	"crossgate/internal/handler"
	"crossgate/internal/identity/provider"
	redisledger "crossgate/internal/ledger/redis"
	"crossgate/internal/logger"
	"crossgate/internal/port"
	"crossgate/internal/router"
	"crossgate/internal/service"
	"crossgate/internal/session"

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

	providerClient, err := provider.New(cfg.Provider)
	if err != nil {
		return fmt.Errorf("failed to initialize identity provider client: %w", err)
	}

	sessions := session.NewManager(cfg.Session)

	var ledger port.ConsumptionLedger
	if cfg.Ledger.Enabled {
		redisLedger, err := redisledger.New(context.Background(), cfg.Ledger)
		if err != nil {
			return fmt.Errorf("failed to connect to consumption ledger: %w", err)
		}
		defer redisLedger.Close()
		ledger = redisLedger
	}

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

	redemptionSvc := service.NewRedemptionService(providerClient, sessions, ledger, recorder, "/", zlog)

	cookieOpts := session.CookieOptions{
		Secure:   cfg.Session.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	ssoH := handler.NewSSOHandler(redemptionSvc, cookieOpts)
	sessionH := handler.NewSessionHandler(cookieOpts)
	healthH := handler.NewHealthHandler(auditDB)

	r := router.Target(ssoH, sessionH, healthH, sessions, cfg.CORS, zlog)

	zlog.Info("target app starting", zap.String("port", cfg.Target.Port))
	if err := r.Run(cfg.Target.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
