package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// InitialState - returns the empty board. X moves first.
func InitialState() entity.Board {
	return entity.Board{}
}

// CurrentPlayer - returns the mark that moves next, derived from the mark counts.
func CurrentPlayer(board entity.Board) entity.Mark {
	if board == InitialState() || board.Count(entity.PlayerX) == board.Count(entity.PlayerO) {
		return entity.PlayerX
	}

	return entity.PlayerO
}

// LegalMoves - every empty cell, in row-major order.
func LegalMoves(board entity.Board) []entity.Move {
	moves := make([]entity.Move, 0, entity.BoardSize)
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, entity.MoveFromIndex(i))
		}
	}

	return moves
}

// Apply - returns a new board with the current player's mark placed at move.
// The input board is not modified.
func Apply(board entity.Board, move entity.Move) (entity.Board, error) {
	if err := validateMove(board, move); err != nil {
		return board, fmt.Errorf("%w %s: %w", apperror.ErrIllegalMove, move, err)
	}

	next := board
	next[move.Index()] = CurrentPlayer(board)

	return next, nil
}

func validateMove(board entity.Board, move entity.Move) error {
	if !move.Valid() {
		return apperror.ErrInvalidCell
	}

	if board[move.Index()] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// Winner - the mark on the first complete line, if any. On boards reachable
// from InitialState this is always the player who just moved. Boards with
// complete lines for both players are rejected by Validate and give an
// unspecified result here.
func Winner(board entity.Board) (entity.Mark, bool) {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return entity.EmptyCell, false
}

// Terminal - true when somebody has won or no empty cell is left.
func Terminal(board entity.Board) bool {
	if _, ok := Winner(board); ok {
		return true
	}

	return board.Count(entity.EmptyCell) == 0
}

// Utility - score of a terminal board from X's point of view.
// Calling it on a non-terminal board returns ScoreDraw.
func Utility(board entity.Board) entity.Score {
	winner, _ := Winner(board)

	switch winner {
	case entity.PlayerX:
		return entity.ScoreWin
	case entity.PlayerO:
		return entity.ScoreLoss
	default:
		return entity.ScoreDraw
	}
}

// Outcome - the status of the game on board: a win for either side, a draw or
// still in progress.
func Outcome(board entity.Board) entity.Outcome {
	if winner, ok := Winner(board); ok {
		if winner == entity.PlayerX {
			return entity.XWins
		}
		return entity.OWins
	}

	if Terminal(board) {
		return entity.Draw
	}

	return entity.InProgress
}

// Validate - checks that the board could have been reached by alternating
// moves starting with X.
func Validate(board entity.Board) error {
	xs, os := board.Count(entity.PlayerX), board.Count(entity.PlayerO)
	if diff := xs - os; diff != 0 && diff != 1 {
		return fmt.Errorf("%w: %d X marks and %d O marks", apperror.ErrInvalidBoard, xs, os)
	}

	xLine, oLine := hasLine(board, entity.PlayerX), hasLine(board, entity.PlayerO)

	switch {
	case xLine && oLine:
		return fmt.Errorf("%w: both players have a complete line", apperror.ErrInvalidBoard)
	case xLine && xs == os:
		return fmt.Errorf("%w: X has a line but O moved after it", apperror.ErrInvalidBoard)
	case oLine && xs != os:
		return fmt.Errorf("%w: O has a line but X moved after it", apperror.ErrInvalidBoard)
	}

	return nil
}

func hasLine(board entity.Board, mark entity.Mark) bool {
	for _, combo := range entity.WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}

	return false
}
