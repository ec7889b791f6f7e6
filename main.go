package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/tictactoe-solver/internal"
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// main - is the entry point of the application. It parses the command line and runs the selected command.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newCommand().Run(ctx, os.Args)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "tictactoe",
		Usage: "optimal moves for 3x3 tic-tac-toe",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yml",
				Usage:   "path to the config file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "print the best move for a position",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "board",
						Aliases:  []string{"b"},
						Usage:    "board in row-major order, '.' for empty cells, e.g. XX./OO./...",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "refresh",
						Usage: "drop the cached solution before solving",
					},
				},
				Action: solveAction,
			},
			{
				Name:  "selfplay",
				Usage: "play optimal moves for both sides until the game ends",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "board",
						Aliases: []string{"b"},
						Value:   entity.Board{}.Key(),
						Usage:   "starting position",
					},
				},
				Action: selfPlayAction,
			},
		},
	}
}

func solveAction(ctx context.Context, cmd *cli.Command) error {
	board, err := entity.ParseBoard(cmd.String("board"))
	if err != nil {
		return fmt.Errorf("failed to parse board: %w", err)
	}

	return withApp(ctx, cmd, func(ctx context.Context, application *app.Application) error {
		if cmd.Bool("refresh") {
			if err = application.Solver.Forget(ctx, board); err != nil {
				return fmt.Errorf("failed to refresh solution: %w", err)
			}
		}

		solution, err := application.Solver.BestMove(ctx, board)
		if errors.Is(err, apperror.ErrGameFinished) {
			return printFinished(cmd.Root().Writer, board)
		}
		if err != nil {
			return fmt.Errorf("failed to solve board: %w", err)
		}

		return printSolution(cmd.Root().Writer, board, solution)
	})
}

func selfPlayAction(ctx context.Context, cmd *cli.Command) error {
	board, err := entity.ParseBoard(cmd.String("board"))
	if err != nil {
		return fmt.Errorf("failed to parse board: %w", err)
	}

	return withApp(ctx, cmd, func(ctx context.Context, application *app.Application) error {
		match, err := application.Matches.Play(ctx, board)
		if err != nil {
			return fmt.Errorf("self-play failed: %w", err)
		}

		return printMatch(cmd.Root().Writer, match)
	})
}

func withApp(ctx context.Context, cmd *cli.Command, run func(context.Context, *app.Application) error) error {
	conf, err := initConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	logger := initLogger(conf)

	application, err := app.New(ctx, logger, conf)
	if err != nil {
		return fmt.Errorf("app init failed: %w", err)
	}

	defer func() {
		_ = application.Close()
	}()

	return run(ctx, application)
}

// initialize config.
func initConfig(path string) (*config.Config, error) {
	if !filepath.IsAbs(path) {
		baseDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(baseDir, path)
	}

	return config.Load(path)
}

// initialize logger. Logs go to stderr so command output stays on stdout.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printSolution(w io.Writer, board entity.Board, solution *entity.Solution) error {
	source := "searched"
	if solution.Cached {
		source = "cached"
	}

	_, err := fmt.Fprintf(w, "board:     %s\nto move:   %s\nbest move: %s\nscore:     %d\nnodes:     %d (%s)\n",
		board, tictactoe.CurrentPlayer(board), solution.Move, solution.Score, solution.Nodes, source)

	return err
}

func printFinished(w io.Writer, board entity.Board) error {
	_, err := fmt.Fprintf(w, "board:     %s\ngame over: %s\n", board, tictactoe.Outcome(board))

	return err
}

func printMatch(w io.Writer, match *entity.Match) error {
	if _, err := fmt.Fprintf(w, "match %s from %s\n", match.ID, match.Start); err != nil {
		return err
	}

	board := match.Start
	for i, move := range match.Moves {
		mover := tictactoe.CurrentPlayer(board)

		next, err := tictactoe.Apply(board, move)
		if err != nil {
			return fmt.Errorf("failed to replay move %d: %w", i+1, err)
		}
		board = next

		if _, err = fmt.Fprintf(w, "%2d. %s %s  %s\n", i+1, mover, move, board); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "outcome: %s\n", match.Outcome)

	return err
}
