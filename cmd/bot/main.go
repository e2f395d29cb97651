package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"max.ks1230/expense-tracker/internal/clients/cache"
	ledgerclient "max.ks1230/expense-tracker/internal/clients/ledger"
	"max.ks1230/expense-tracker/internal/clients/s3"
	"max.ks1230/expense-tracker/internal/clients/tg"
	"max.ks1230/expense-tracker/internal/config"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/messages"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/session"
	"max.ks1230/expense-tracker/internal/tracing"
	"max.ks1230/expense-tracker/internal/transport/rest"
)

const (
	serviceName     = "expense-bot"
	shutdownTimeout = 5 * time.Second
)

type sessionStore interface {
	Get(ctx context.Context, userID int64) (session.Session, error)
	Save(ctx context.Context, userID int64, sess session.Session) error
}

type reportArchiver interface {
	Archive(ctx context.Context, userID int64, report reports.Report) error
}

func main() {
	defer logger.Sync()
	logger.Info("Bot init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init(serviceName, conf.Jaeger())
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tgClient, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init telegram client:", zap.Error(err))
	}

	ledgerClient, err := ledgerclient.New(conf.GRPC())
	if err != nil {
		logger.Fatal("failed to init ledger client", zap.Error(err))
	}
	defer ledgerClient.Close()

	var sessions sessionStore = session.NewInMemStore()
	if conf.Memcached().Enabled() {
		sessions, err = cache.NewSessionStore(conf.Memcached())
		if err != nil {
			logger.Fatal("failed to init memcached", zap.Error(err))
		}
	}

	var archiver reportArchiver
	if conf.S3().Enabled() {
		archiver, err = s3.NewArchiver(ctx, conf.S3())
		if err != nil {
			logger.Fatal("failed to init report archive", zap.Error(err))
		}
	}

	service := messages.NewService(tgClient, sessions, ledgerClient, reports.NewExporter(), archiver)
	dispatcher := messages.NewDispatcher(service)

	logger.Info("Bot init - end")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tgClient.ListenUpdates(gctx, dispatcher)
		dispatcher.Close()
		return nil
	})
	if addr := conf.App().AdminListen(); addr != "" {
		admin := rest.NewAdminServer(addr)
		g.Go(admin.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return admin.Shutdown(shutdownCtx)
		})
	}

	if err = g.Wait(); err != nil {
		logger.Error("bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}
