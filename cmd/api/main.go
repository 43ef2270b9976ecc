package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-manager/internal/db"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/lock"
	infraRepo "github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/logger"
	"github.com/BruksfildServices01/salon-manager/internal/notify"
	"github.com/BruksfildServices01/salon-manager/internal/payment"
	"github.com/BruksfildServices01/salon-manager/internal/realtime"
	"github.com/BruksfildServices01/salon-manager/internal/routes"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/account"
)

const (
	notificationHistory = 50
	lockPoolSize        = 16
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	if err := run(cfg, log); err != nil {
		log.Error("API stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// run owns every resource it opens, so an early return still releases them.
func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting salon manager API",
		zap.String("env", cfg.Env),
		zap.String("gateway", cfg.GatewayDriver),
		zap.String("feed", cfg.FeedDriver),
	)

	// ======================================================
	// 🔁 REALTIME + GATEWAY
	// ======================================================
	feed, locker, closeFeed, err := openFeed(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open change feed: %w", err)
	}
	defer closeFeed()

	gw, err := openGateway(cfg, feed, log)
	if err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	// ======================================================
	// 🔔 NOTIFICAÇÕES + STORES
	// ======================================================
	ring := notify.NewRing(notificationHistory)
	dispatcher := notify.NewDispatcher(log, notify.NewLogSink(log), ring)
	defer dispatcher.Close()

	stores := store.NewSet(store.Deps{Gateway: gw, Notifier: dispatcher, Logger: log, Locker: locker})
	if err := stores.Start(ctx); err != nil {
		return fmt.Errorf("start stores: %w", err)
	}
	defer stores.Close()

	users := infraRepo.NewUserGatewayRepository(gw)
	if created, err := account.NewEnsureOwner(users, log).Execute(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("Failed to create owner account", zap.Error(err))
	} else if created {
		log.Info("Owner account created from ADMIN_EMAIL")
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	deps := routes.Deps{
		Config:        cfg,
		Stores:        stores,
		Users:         users,
		Storage:       openStorage(cfg, log),
		Notifications: ring,
		Logger:        log,
		Resolver:      net.DefaultResolver,
	}
	if cfg.MercadoPagoToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken, cfg.MercadoPagoNotificationURL, log)
		if err != nil {
			log.Error("Payments disabled", zap.Error(err))
		} else {
			deps.Checkout = mp
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Graceful shutdown complete")
	return nil
}

// openFeed picks the change feed and the row locker that matches its reach.
// The returned func releases whatever the feed holds.
func openFeed(ctx context.Context, cfg *config.Config, log *zap.Logger) (realtime.Feed, lock.Locker, func(), error) {
	switch cfg.FeedDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		feed, err := realtime.NewRedisFeed(ctx, client, log)
		if err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		return feed, lock.NewRedis(client, log), func() {
			_ = feed.Close()
			_ = client.Close()
		}, nil

	case "postgres":
		pool, err := realtime.OpenPool(ctx, cfg.DBUrl, 4)
		if err != nil {
			return nil, nil, nil, err
		}
		feed, err := realtime.NewPGFeed(ctx, pool, log)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		// held advisory locks pin connections, keep them off the feed's pool
		lockPool, err := realtime.OpenPool(ctx, cfg.DBUrl, lockPoolSize)
		if err != nil {
			_ = feed.Close()
			pool.Close()
			return nil, nil, nil, err
		}
		return feed, lock.NewPostgres(lockPool, log), func() {
			_ = feed.Close()
			pool.Close()
			lockPool.Close()
		}, nil
	}

	feed := realtime.NewLocalFeed()
	return feed, lock.NewLocal(), func() { _ = feed.Close() }, nil
}

func openGateway(cfg *config.Config, feed realtime.Feed, log *zap.Logger) (gateway.Gateway, error) {
	if cfg.GatewayDriver == "memory" {
		return gateway.NewMemoryGateway(gateway.WithFeed(feed)), nil
	}
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}
	return gateway.NewGormGateway(db, feed, log), nil
}

// openStorage uses S3 when an endpoint is configured and keeps logos in
// memory otherwise.
func openStorage(cfg *config.Config, log *zap.Logger) storage.Storage {
	if cfg.S3Endpoint == "" {
		log.Warn("S3_ENDPOINT not set, logos are kept in memory")
		return storage.NewMemoryStorage(cfg.StoragePublicURL)
	}
	return storage.NewS3Storage(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.StoragePublicURL,
	}, log)
}
