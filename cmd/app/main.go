package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TemirB/order-pipeline/internal/application/service"
	"github.com/TemirB/order-pipeline/internal/cache"
	"github.com/TemirB/order-pipeline/internal/config"
	"github.com/TemirB/order-pipeline/internal/database"
	"github.com/TemirB/order-pipeline/internal/gateway"
	"github.com/TemirB/order-pipeline/internal/httpapi"
	"github.com/TemirB/order-pipeline/internal/i18n"
	"github.com/TemirB/order-pipeline/internal/kafka"
	"github.com/TemirB/order-pipeline/internal/notify"
	"github.com/TemirB/order-pipeline/internal/observability"
	"github.com/TemirB/order-pipeline/internal/pkg/circuit"
	"github.com/TemirB/order-pipeline/internal/pkg/retry"
)

const recentObservations = 256

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Конфиг
	cfg := config.Load()

	// Логгер
	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("order pipeline stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("order pipeline stopped")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	metrics := observability.NewInmem(recentObservations)
	onRetry := func(what string) func(int, error, time.Duration) {
		return func(attempt int, err error, delay time.Duration) {
			logger.Warn("dependency not ready, retrying",
				zap.String("dependency", what),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
		}
	}

	// База
	var pool interface{ Close() }
	var repo *database.Repo
	err := retry.Do(ctx, cfg.Retry, func(ctx context.Context) error {
		p, err := database.Connect(ctx, cfg.DSN(), cfg.Pg.TraceLevel, logger)
		if err != nil {
			return err
		}
		if cfg.Pg.Migrate {
			if err := database.Migrate(ctx, p); err != nil {
				p.Close()
				return err
			}
		}
		pool, repo = p, database.New(p, cfg.Tables)
		return nil
	}, onRetry("postgres"))
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("postgres ready", zap.Bool("migrated", cfg.Pg.Migrate))

	// Кэш
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Warn("close failed", zap.Error(err))
			}
		}
	}()

	var store cache.Store
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		err := retry.Do(ctx, cfg.Retry, func(ctx context.Context) error {
			client, err := cache.ConnectRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
			if err != nil {
				return err
			}
			closers = append(closers, client)
			store = cache.NewRedis(client)
			return nil
		}, onRetry("redis"))
		if err != nil {
			return err
		}
	default:
		store = cache.NewMemory(cfg.Cache.Cap, cfg.Cache.TTL)
	}
	orderCache := cache.NewOrderCache(store, cfg.Cache.TTL)
	logger.Info("cache ready", zap.String("backend", cfg.Cache.Backend), zap.Duration("ttl", cfg.Cache.TTL))

	// Брейкеры
	newBreaker := func(name string) *circuit.Breaker {
		return circuit.New(name, cfg.Breaker, circuit.WithStateChange(func(name string, from, to circuit.State) {
			logger.Warn("circuit state changed",
				zap.String("client", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.ObserveBreaker(name, from.String(), to.String())
		}))
	}
	users := gateway.NewUserClient(cfg.Remote.UserURL, cfg.Remote.Timeout, newBreaker("userClient"), logger, metrics)
	products := gateway.NewProductClient(cfg.Remote.ProductURL, cfg.Remote.Timeout, newBreaker("productClient"), logger, metrics)

	// Уведомления
	notifier, err := newNotifier(ctx, cfg, logger, newBreaker, &closers)
	if err != nil {
		return err
	}
	dispatcher := notify.NewDispatcher(notifier, cfg.Notify.Workers, cfg.Notify.Queue, cfg.Notify.Timeout, logger, metrics)
	logger.Info("notifications ready",
		zap.String("transport", notifier.Name()),
		zap.Int("workers", cfg.Notify.Workers),
		zap.Int("queue", cfg.Notify.Queue),
	)

	// Сервис
	svc := service.NewService(orderCache, repo, users, products, dispatcher, logger, metrics)

	// Хендлер
	server := httpapi.New(svc, i18n.New(cfg.DefaultLocale), logger, metrics, httpapi.WithDebugMetrics(metrics))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(gctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	err = g.Wait()

	logger.Info("shutting down, draining notifications")
	dispatcher.Close()
	return err
}

func newNotifier(ctx context.Context, cfg config.Config, logger *zap.Logger, newBreaker func(string) *circuit.Breaker, closers *[]io.Closer) (notify.Notifier, error) {
	switch cfg.Notify.Transport {
	case config.NotifyHTTP:
		return notify.NewHTTPNotifier(cfg.Notify.URL, cfg.Notify.Timeout, newBreaker("notificationClient"), logger), nil
	case config.NotifyKafka:
		err := retry.Do(ctx, cfg.Retry, func(ctx context.Context) error {
			return kafka.EnsureTopic(ctx, cfg.Notify.KafkaBrokers, kafka.TopicSpec{
				Name:              cfg.Notify.KafkaTopic,
				Partitions:        1,
				ReplicationFactor: 1,
			}, logger)
		}, nil)
		if err != nil {
			return nil, err
		}
		pub := kafka.NewPublisher(cfg.Notify.KafkaBrokers, cfg.Notify.KafkaTopic, logger)
		*closers = append(*closers, pub)
		return notify.NewKafkaNotifier(pub), nil
	case config.NotifyAMQP:
		var n *notify.AMQPNotifier
		err := retry.Do(ctx, cfg.Retry, func(context.Context) error {
			var err error
			n, err = notify.DialAMQP(cfg.Notify.AMQPURL, cfg.Notify.AMQPQueue, logger)
			return err
		}, nil)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, n)
		return n, nil
	default:
		return notify.Nop{}, nil
	}
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}
