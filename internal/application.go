package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type Application struct {
	logger *slog.Logger

	Solver  service.SolverService
	Matches *usecase.MatchRunner

	redis *redis.Client
}

// New - wires the solver and the match runner. The Redis solution cache is
// only opened when it is enabled in the config.
func New(ctx context.Context, logger *slog.Logger, conf *config.Config) (*Application, error) {
	log := logger.With("component", "app")

	app := &Application{logger: log}

	var cache repository.SolutionRepository
	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("Solution cache enabled", "addr", redisAddrString, "ttl", conf.Redis.TTL)

		app.redis = redisStorage
		cache = repository.NewSolutionRepository(redisStorage, conf.Redis.TTL)
	}

	app.Solver = service.NewSolverService(logger, cache)
	app.Matches = usecase.NewMatchRunner(logger, app.Solver)

	return app, nil
}

func (that *Application) Close() error {
	if that.redis == nil {
		return nil
	}

	if err := that.redis.Close(); err != nil {
		that.logger.Error("could not close redis storage", "error", err)
		return fmt.Errorf("could not close redis storage: %w", err)
	}

	return nil
}
