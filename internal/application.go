package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gridfill-backend/internal/config"
	"github.com/rocketscienceinc/gridfill-backend/internal/gridfill"
	"github.com/rocketscienceinc/gridfill-backend/internal/repository"
	"github.com/rocketscienceinc/gridfill-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gridfill-backend/internal/service"
	"github.com/rocketscienceinc/gridfill-backend/internal/usecase"
	"github.com/rocketscienceinc/gridfill-backend/pkg/handlers"
	"github.com/rocketscienceinc/gridfill-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, deps, closeStore, err := initGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStore(); err != nil {
			log.Error("could not close game storage", "error", err)
		}
	}()

	bot := service.NewBotService(conf.BotSeed)
	gameController := gridfill.NewGameController(bot)
	gameManager := usecase.NewGameManager(logger, gameRepo, gameController)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
	server := rest.NewServer(logger, gameManager, conf.SessionTTL, deps...)
	if err = rest.Start(ctx, conf.HTTPPort, server); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

// initGameRepository - picks the session store named in the config.
func initGameRepository(
	ctx context.Context,
	conf *config.Config,
) (repository.GameRepository, []handlers.Pinger, func() error, error) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemoryGameRepository(conf.SessionTTL), nil, func() error { return nil }, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.SessionTTL)

	return gameRepo, []handlers.Pinger{redisStorage}, redisStorage.Close, nil
}
