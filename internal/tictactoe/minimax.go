package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const (
	negInf entity.Score = math.MinInt
	posInf entity.Score = math.MaxInt
)

// search counts the boards it visits. Each call to Solve owns its own search,
// so concurrent solves share nothing.
type search struct {
	nodes int
}

// BestMove - returns the optimal move for the player to move, or false when
// the board is terminal.
func BestMove(board entity.Board) (entity.Move, bool) {
	solution, ok := Solve(board)

	return solution.Move, ok
}

// Solve - runs a full-depth minimax search from board. Among moves with the
// same value the first one in LegalMoves order wins.
func Solve(board entity.Board) (entity.Solution, bool) {
	if Terminal(board) {
		return entity.Solution{}, false
	}

	s := &search{nodes: 1}

	var (
		move  entity.Move
		score entity.Score
	)
	if CurrentPlayer(board) == entity.PlayerX {
		move, score = s.bestMax(board)
	} else {
		move, score = s.bestMin(board)
	}

	return entity.Solution{Move: move, Score: score, Nodes: s.nodes}, true
}

// Value - the minimax value of board, from X's point of view.
func Value(board entity.Board) entity.Score {
	s := &search{}
	if CurrentPlayer(board) == entity.PlayerX {
		return s.maxValue(board)
	}

	return s.minValue(board)
}

func (that *search) bestMax(board entity.Board) (entity.Move, entity.Score) {
	var best entity.Move
	value := negInf

	for _, move := range LegalMoves(board) {
		score := that.minValue(that.next(board, move))
		if score == entity.ScoreWin {
			return move, score
		}
		if score > value {
			value = score
			best = move
		}
	}

	return best, value
}

func (that *search) bestMin(board entity.Board) (entity.Move, entity.Score) {
	var best entity.Move
	value := posInf

	for _, move := range LegalMoves(board) {
		score := that.maxValue(that.next(board, move))
		if score == entity.ScoreLoss {
			return move, score
		}
		if score < value {
			value = score
			best = move
		}
	}

	return best, value
}

func (that *search) maxValue(board entity.Board) entity.Score {
	if Terminal(board) {
		return Utility(board)
	}

	value := negInf
	for _, move := range LegalMoves(board) {
		value = max(value, that.minValue(that.next(board, move)))
		// nothing beats a win
		if value == entity.ScoreWin {
			return value
		}
	}

	return value
}

func (that *search) minValue(board entity.Board) entity.Score {
	if Terminal(board) {
		return Utility(board)
	}

	value := posInf
	for _, move := range LegalMoves(board) {
		value = min(value, that.maxValue(that.next(board, move)))
		if value == entity.ScoreLoss {
			return value
		}
	}

	return value
}

// next applies a move taken from LegalMoves, so Apply cannot fail here.
func (that *search) next(board entity.Board, move entity.Move) entity.Board {
	that.nodes++

	child, err := Apply(board, move)
	if err != nil {
		panic(err)
	}

	return child
}
