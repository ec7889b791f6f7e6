package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type SolverService interface {
	BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error)
	Forget(ctx context.Context, board entity.Board) error
}

type solutionCache interface {
	Get(ctx context.Context, board entity.Board) (*entity.Solution, error)
	Save(ctx context.Context, board entity.Board, solution *entity.Solution) error
	Delete(ctx context.Context, board entity.Board) error
}

type solverService struct {
	logger *slog.Logger

	cache solutionCache
}

// NewSolverService - cache may be nil, then every position is searched.
func NewSolverService(logger *slog.Logger, cache solutionCache) SolverService {
	return &solverService{
		logger: logger.With("component", "solver"),
		cache:  cache,
	}
}

func (that *solverService) BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	log := that.logger.With("method", "BestMove", "board", board.String())

	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	if tictactoe.Terminal(board) {
		return nil, apperror.ErrGameFinished
	}

	if solution := that.cached(ctx, log, board); solution != nil {
		return solution, nil
	}

	solution, ok := tictactoe.Solve(board)
	if !ok {
		return nil, apperror.ErrGameFinished
	}

	log.Debug("position solved", "move", solution.Move.String(), "score", int(solution.Score), "nodes", solution.Nodes)

	if that.cache != nil {
		if err := that.cache.Save(ctx, board, &solution); err != nil {
			log.Warn("failed to cache solution", "error", err)
		}
	}

	return &solution, nil
}

func (that *solverService) cached(ctx context.Context, log *slog.Logger, board entity.Board) *entity.Solution {
	if that.cache == nil {
		return nil
	}

	solution, err := that.cache.Get(ctx, board)
	switch {
	case err == nil:
		// a stale or foreign entry must not leak an illegal move to callers
		if _, applyErr := tictactoe.Apply(board, solution.Move); applyErr != nil {
			log.Warn("cached solution is not playable", "move", solution.Move.String(), "error", applyErr)
			return nil
		}

		log.Debug("solution served from cache", "move", solution.Move.String())
		solution.Cached = true

		return solution
	case errors.Is(err, repository.ErrSolutionNotFound):
		return nil
	default:
		log.Warn("failed to read solution cache", "error", err)
		return nil
	}
}

// Forget - drops the cached solution of board, if any.
func (that *solverService) Forget(ctx context.Context, board entity.Board) error {
	if that.cache == nil {
		return nil
	}

	err := that.cache.Delete(ctx, board)
	if err != nil && !errors.Is(err, repository.ErrSolutionNotFound) {
		return fmt.Errorf("failed to delete cached solution: %w", err)
	}

	return nil
}
