package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var ErrUnplayableMove = errors.New("solver returned an unplayable move")

type solver interface {
	BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type MatchRunner struct {
	logger *slog.Logger
	solver solver
}

func NewMatchRunner(logger *slog.Logger, solver solver) *MatchRunner {
	return &MatchRunner{
		logger: logger.With("component", "match"),
		solver: solver,
	}
}

// Play - both sides play the solver's move from board until the game ends.
func (that *MatchRunner) Play(ctx context.Context, board entity.Board) (*entity.Match, error) {
	match := &entity.Match{
		ID:      uuid.NewString(),
		Start:   board,
		Final:   board,
		Moves:   make([]entity.Move, 0, board.Count(entity.EmptyCell)),
		Outcome: tictactoe.Outcome(board),
		Started: time.Now(),
	}

	log := that.logger.With("method", "Play", "matchID", match.ID)
	log.Info("match started", "board", board.String())

	for !match.IsFinished() {
		if err := ctx.Err(); err != nil {
			return match, fmt.Errorf("match interrupted: %w", err)
		}

		if err := that.turn(ctx, match); err != nil {
			return match, err
		}
	}

	log.Info("match finished", "outcome", match.Outcome, "moves", len(match.Moves), "board", match.Final.String())

	return match, nil
}

func (that *MatchRunner) turn(ctx context.Context, match *entity.Match) error {
	mover := tictactoe.CurrentPlayer(match.Final)

	solution, err := that.solver.BestMove(ctx, match.Final)
	if err != nil {
		return fmt.Errorf("failed to get best move: %w", err)
	}

	next, err := tictactoe.Apply(match.Final, solution.Move)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnplayableMove, err)
	}

	that.logger.Debug("move played", "matchID", match.ID, "player", mover, "move", solution.Move.String(),
		"score", int(solution.Score), "cached", solution.Cached)

	match.Final = next
	match.Moves = append(match.Moves, solution.Move)
	match.Outcome = tictactoe.Outcome(next)

	return nil
}
