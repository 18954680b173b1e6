package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"subaudit/internal/config"
	httpGateway "subaudit/internal/gateways/http"
	accountRepository "subaudit/internal/repository/account/postgres"
	auditRepository "subaudit/internal/repository/audit/postgres"
	subsRepository "subaudit/internal/repository/subscription/postgres"
	"subaudit/internal/scheduler"
	"subaudit/internal/usecase"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfig()
	pgCfg := cfg.Pg
	log := setupLogger(cfg.Env)

	log.Info("starting subaudit", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	databaseUrl := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		pgCfg.User,
		pgCfg.Password,
		pgCfg.Host,
		pgCfg.Port,
		pgCfg.Db)

	pool, err := pgxpool.New(ctx, databaseUrl)
	if err != nil {
		log.Error("failed to init storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	log.Debug("init database")

	sr := subsRepository.NewSubRepository(pool)
	ar := auditRepository.NewAuditRepository(pool)
	acr := accountRepository.NewAccountRepository(pool)

	loc := cfg.Scheduler.Location()
	now := func() time.Time { return time.Now().In(loc) }

	renewal := usecase.NewRenewal(sr, log)
	audits := usecase.NewAuditScheduler(ar, log)

	useCases := httpGateway.UseCases{
		Sub:      usecase.NewSubscription(sr, audits, log),
		Renewal:  renewal,
		Audits:   audits,
		Notifier: usecase.NewNotifier(acr, acr),
		Users:    acr,
		Now:      now,
	}

	daily, err := scheduler.New(renewal, cfg.Scheduler.RunAt, loc, log)
	if err != nil {
		log.Error("failed to init scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	daily.Start()
	defer daily.Stop()
	log.Info("daily renewal run scheduled",
		slog.String("run_at", cfg.Scheduler.RunAt),
		slog.String("timezone", cfg.Scheduler.Timezone))

	server := httpGateway.New(useCases,
		*cfg,
		log,
		httpGateway.WithHost(cfg.Server.Host),
		httpGateway.WithPort(uint16(cfg.Server.Port)),
		httpGateway.WithLogger(log),
		httpGateway.WithTimeout(cfg.Server.Timeout),
	)

	log.Info("starting server", slog.String("address", cfg.Server.Host+":"+strconv.Itoa(cfg.Server.Port)))
	if err := server.Run(ctx); err != nil {
		log.Error(err.Error())
		return
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch strings.ToLower(env) {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return log
}
