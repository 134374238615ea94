package main

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/go-redis/redis/v8"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	bridgehandler "github.com/goalpulse/reminder-service/internal/api/handlers/bridge"
	reminderhandler "github.com/goalpulse/reminder-service/internal/api/handlers/reminder"
	scanhandler "github.com/goalpulse/reminder-service/internal/api/handlers/scan"
	"github.com/goalpulse/reminder-service/internal/api/router"
	"github.com/goalpulse/reminder-service/internal/api/server"
	"github.com/goalpulse/reminder-service/internal/backoff"
	"github.com/goalpulse/reminder-service/internal/badge"
	"github.com/goalpulse/reminder-service/internal/bridge"
	"github.com/goalpulse/reminder-service/internal/config"
	"github.com/goalpulse/reminder-service/internal/dispatch"
	devicerepo "github.com/goalpulse/reminder-service/internal/repository/device"
	reminderrepo "github.com/goalpulse/reminder-service/internal/repository/reminder"
	"github.com/goalpulse/reminder-service/internal/scanner"
	remindersvc "github.com/goalpulse/reminder-service/internal/service/reminder"
	"github.com/goalpulse/reminder-service/internal/worker"
	"github.com/goalpulse/reminder-service/pkg/email"
	"github.com/goalpulse/reminder-service/pkg/push"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Cache-aside status reads go through the wbf wrapper; badge
	// counters and pub/sub need raw commands, so they get a plain
	// go-redis client on the same node.
	cache := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err = cache.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
	}

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		smtpPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
	)
	pushClient := push.NewClient(cfg.Push.ServerKey)

	reminders := reminderrepo.NewRepository(db, cfg.Backoff.MaxRetries)
	devices := devicerepo.NewRepository(db)

	counter := badge.NewCounter(rdb)
	dispatcher := dispatch.NewDispatcher(pushClient, emailClient, devices)

	policy := backoff.Policy{
		Base:       cfg.Backoff.Base,
		Factor:     cfg.Backoff.Factor,
		Cap:        cfg.Backoff.Cap,
		MaxRetries: cfg.Backoff.MaxRetries,
	}

	sc := scanner.New(reminders, dispatcher, counter, policy, cfg.Scan.BatchSize)

	hub := bridge.NewHub(sc, reminders, bridge.NewGate(cfg.Scan.Cooldown), cfg.Scan.Tolerance)
	go counter.Subscribe(ctx, hub.BroadcastBadge)

	service := remindersvc.NewService(reminders, counter, cache)
	remHandler := reminderhandler.NewHandler(service, val, cfg)
	scHandler := scanhandler.NewHandler(sc, cfg)
	brHandler := bridgehandler.NewHandler(hub)

	sweeper := worker.NewSweeper(sc, cfg.Scan.Interval)
	go sweeper.Run(ctx)

	r := router.New(remHandler, scHandler, brHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := rdb.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close redis client")
	}
}
