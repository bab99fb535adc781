package app

import (
	"context"
	"os"
	"os/signal"
	"pairing-hub/internal/broadcast"
	"pairing-hub/internal/config"
	"pairing-hub/internal/hub"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/lifecycle"
	"pairing-hub/internal/notifier"
	"pairing-hub/internal/presence"
	"pairing-hub/internal/push"
	"pairing-hub/internal/repository"
	"pairing-hub/internal/server"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const disconnectTimeout = 5 * time.Second

func Run(cfg config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	// Stores and the backplane outlive the servers so that disconnect cleanup
	// can still run during shutdown.
	delayedCtx, delayedCancel := context.WithCancel(context.WithoutCancel(ctx))
	delayedWg := &sync.WaitGroup{}

	repo, mongoClient, err := repository.NewMongoRepository(delayedCtx, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	dir, redisClient, err := presence.NewRedisDirectory(delayedCtx, cfg.Redis)
	if err != nil {
		logger.Fatalw("failed to create presence directory", "error", err)
	}

	manager := lifecycle.NewManager(logger, dir)
	notif := notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka, cfg.InstanceID)
	pusher := push.NewPusher(logger, manager, dir, notif)
	router := broadcast.NewRouter(logger, dir, repo, pusher)

	h := hub.New(logger, cfg.Hub, repo, dir, pusher, router)
	manager.SetHooks(h)

	notifier.NewKafkaConsumer(delayedCtx, delayedWg, logger, cfg.Kafka, cfg.InstanceID, push.Relay(manager))

	resolver := identity.NewResolver(cfg.Auth.JWTSecret)
	server.RunServer(ctx, logger, wg, cfg, resolver, manager, h)
	server.RunHealthServer(ctx, logger, wg, cfg)
	logger.Infow("hub started", "instanceId", cfg.InstanceID)

	<-ctx.Done()
	wg.Wait()
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	delayedCancel()
	delayedWg.Wait()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer closeCancel()
	if err := mongoClient.Disconnect(closeCtx); err != nil {
		logger.Errorw("failed to disconnect from mongo", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Errorw("failed to close redis client", "error", err)
	}
}
