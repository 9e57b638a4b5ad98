package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"dutch_market/internal/config"
	"dutch_market/internal/domain/service/auction"
	"dutch_market/internal/domain/value"
	"dutch_market/internal/infrastructure/clock"
	"dutch_market/internal/infrastructure/memory"
	"dutch_market/internal/infrastructure/metrics"
	"dutch_market/internal/infrastructure/notifier"
	"dutch_market/internal/infrastructure/persistence"
	"dutch_market/internal/server"
	"dutch_market/pkg/application/connectors"
	"dutch_market/pkg/application/modules"
	"dutch_market/pkg/contextx"
	"dutch_market/pkg/logx"
	prommetrics "dutch_market/pkg/metrics"
)

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type ledger interface {
	auction.Ledger
	Balance(ctx context.Context, account value.AccountID) (int64, error)
}

type storage struct {
	repo   auction.AuctionRepository
	ledger ledger
	close  func(ctx context.Context)
}

func Run(ctx context.Context, cfg config.Config) error {
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	))

	// 1. Storage
	store, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("newStorage: %w", err)
	}
	defer store.close(ctx)

	// 2. Redis (optional)
	var redisClient *redis.Client

	if cfg.Redis.Address != "" {
		rc := &connectors.Redis{
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			Address:            cfg.Redis.Address,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		redisClient = rc.Client(ctx)
		defer rc.Close(ctx)
	}

	// 3. Notifications
	notifiers := notifier.Multi{notifier.NewLog()}

	if cfg.Notify.RedisEnabled {
		notifiers = append(notifiers, notifier.NewRedis(redisClient).
			WithChannel(cfg.Notify.RedisChannel).
			WithStream(cfg.Notify.RedisStream))
	}

	if cfg.Notify.QueueEnabled {
		queueClient := asynq.NewClientFromRedisClient(redisClient)

		notifiers = append(notifiers, notifier.NewQueue(queueClient).
			WithQueue(cfg.Notify.QueueName).
			WithMaxRetry(cfg.Notify.MaxRetry))
	}

	// 4. Engine
	registry := prommetrics.NewRegistry()

	service := auction.NewAuctionService(
		store.repo,
		store.ledger,
		clock.NewSystem(),
		value.AccountID(cfg.Engine.PlatformAccount),
	).
		WithFeePercent(cfg.Engine.FeePercent).
		WithNotifier(notifiers).
		WithRecorder(metrics.NewRecorder(registry))

	// 5. Transport
	handler := server.NewHandler(
		server.NewServer(
			server.NewAuctionServer(service),
			server.NewLedgerServer(store.ledger),
		),
		server.HandlerOptions{
			LogBodies:      cfg.Log.HTTPBodies,
			LogFieldMaxLen: cfg.Log.FieldMaxLength,
		},
	)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.App.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.App.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.App.MetricsListenAddress, Gatherer: registry}.Run(ctx, g)

	if cfg.Notify.QueueEnabled {
		bot, err := notifier.NewTelegramBot(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		delivery := notifier.NewDeliveryHandler(bot)

		modules.AsynqServer{
			Redis:           redisClient,
			Concurrency:     cfg.Notify.QueueConcurrency,
			ShutdownTimeout: cfg.App.ShutdownTimeout,
		}.Run(ctx, g,
			modules.AsynqQueues{cfg.Notify.QueueName: 1},
			modules.AsynqHandler{Pattern: delivery.Pattern(), Handle: delivery.Handle},
		)
	}

	logger(ctx).Info("application started",
		slog.String("storage", cfg.Engine.Storage),
		slog.Uint64("fee-percent", cfg.Engine.FeePercent),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newStorage(ctx context.Context, cfg config.Config) (storage, error) {
	if cfg.Engine.Storage != config.StoragePostgres {
		return storage{
			repo:   memory.NewAuctionRepository(),
			ledger: memory.NewLedger(),
			close:  func(context.Context) {},
		}, nil
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)

	if cfg.Engine.Migrate {
		if err := persistence.Migrate(ctx, db); err != nil {
			pg.Close(ctx)
			return storage{}, fmt.Errorf("persistence.Migrate: %w", err)
		}
	}

	return storage{
		repo:   persistence.NewAuctionRepository(db),
		ledger: persistence.NewLedgerRepository(db),
		close:  pg.Close,
	}, nil
}
