package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"max.ks1230/expense-tracker/internal/clients/kafka"
	"max.ks1230/expense-tracker/internal/config"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/events"
	"max.ks1230/expense-tracker/internal/model/ledger"
	"max.ks1230/expense-tracker/internal/model/rates"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/storage"
	"max.ks1230/expense-tracker/internal/tracing"
	"max.ks1230/expense-tracker/internal/transport/grpcserver"
	"max.ks1230/expense-tracker/internal/transport/rest"
)

const (
	serviceName     = "expense-ledger"
	shutdownTimeout = 10 * time.Second
)

func main() {
	defer logger.Sync()
	logger.Info("Ledger init - start")

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

	db, err := storage.Open(ctx, conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init storage:", zap.Error(err))
	}
	defer db.Close()

	source, err := rates.NewSource(conf.Rates(), conf.Fixer())
	if err != nil {
		logger.Fatal("failed to init rate source", zap.Error(err))
	}
	resolver := rates.NewResolver(source, conf.Rates())

	var publisher events.Publisher = events.NopPublisher{}
	if conf.Kafka().Enabled() {
		producer, err := kafka.NewProducer(conf.Kafka())
		if err != nil {
			logger.Fatal("failed to init kafka producer", zap.Error(err))
		}
		defer producer.Close()
		publisher = producer
	}

	service := ledger.NewService(db, resolver, publisher)
	query := ledger.NewQueryService(db)

	grpcServer, err := grpcserver.NewServer(conf.GRPC(), service, query)
	if err != nil {
		logger.Fatal("failed to init grpc server", zap.Error(err))
	}
	httpServer := rest.New(conf.HTTP(), service, query, reports.NewExporter(), db)

	logger.Info("Ledger init - end", zap.String("rates", source.Name()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(grpcServer.Serve)
	g.Go(httpServer.Start)
	g.Go(func() error {
		<-gctx.Done()
		grpcServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		logger.Error("ledger stopped with error", zap.Error(err))
	}
	logger.Info("Ledger stopped")
}
