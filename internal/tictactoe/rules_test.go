package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

// reachableBoards walks every board that alternating play from the initial
// state can produce.
func reachableBoards(t *testing.T) []entity.Board {
	t.Helper()

	seen := map[entity.Board]bool{}
	var boards []entity.Board

	var walk func(board entity.Board)
	walk = func(board entity.Board) {
		if seen[board] {
			return
		}
		seen[board] = true
		boards = append(boards, board)

		if Terminal(board) {
			return
		}

		for _, move := range LegalMoves(board) {
			next, err := Apply(board, move)
			require.NoError(t, err)
			walk(next)
		}
	}
	walk(InitialState())

	return boards
}

func TestInitialState(t *testing.T) {
	// When: creating the initial board
	board := InitialState()

	// Then: every cell is empty and X moves first
	assert.Equal(t, entity.BoardSize, board.Count(e))
	assert.Equal(t, x, CurrentPlayer(board))
	assert.False(t, Terminal(board))
	assert.Equal(t, entity.InProgress, Outcome(board))
}

func TestCurrentPlayer(t *testing.T) {
	t.Run("O moves after X", func(t *testing.T) {
		// Given: a board where X has made one move
		board := entity.Board{x, e, e, e, e, e, e, e, e}

		// Then: it is O's turn
		assert.Equal(t, o, CurrentPlayer(board))
	})

	t.Run("X moves when counts are equal", func(t *testing.T) {
		board := entity.Board{x, o, e, e, e, e, e, e, e}

		assert.Equal(t, x, CurrentPlayer(board))
	})

	t.Run("Turns alternate along any line of play", func(t *testing.T) {
		// Given: the initial board
		board := InitialState()
		expected := x

		// When: filling the cells one by one
		for i := 0; i < entity.BoardSize; i++ {
			require.Equal(t, expected, CurrentPlayer(board))

			next, err := Apply(board, entity.MoveFromIndex(i))
			require.NoError(t, err)

			// Then: the mark just placed belongs to the player whose turn it was
			assert.Equal(t, expected, next[i])

			board = next
			expected = expected.Opponent()
		}
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("Row-major order of empty cells", func(t *testing.T) {
		// Given: a board with three free cells
		board := entity.Board{
			x, e, o,
			o, x, x,
			e, e, o,
		}

		// When: listing legal moves
		moves := LegalMoves(board)

		// Then: the free cells come back in row-major order
		assert.Equal(t, []entity.Move{{Row: 0, Col: 1}, {Row: 2, Col: 0}, {Row: 2, Col: 1}}, moves)
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		board := entity.Board{x, o, x, x, o, o, o, x, x}

		assert.Empty(t, LegalMoves(board))
	})
}

func TestApply(t *testing.T) {
	t.Run("Places the current player's mark on a new board", func(t *testing.T) {
		// Given: a board where O is to move
		board := entity.Board{x, e, e, e, e, e, e, e, e}

		// When: O plays the centre
		next, err := Apply(board, entity.Move{Row: 1, Col: 1})

		// Then: the new board holds O in the centre and the input is untouched
		require.NoError(t, err)
		assert.Equal(t, entity.Board{x, e, e, e, o, e, e, e, e}, next)
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, board)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board with X in the corner
		board := entity.Board{x, e, e, e, e, e, e, e, e}

		// When: O tries to play the same cell
		next, err := Apply(board, entity.Move{Row: 0, Col: 0})

		// Then: the move is illegal because the cell is occupied
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, board, next)
	})

	t.Run("Error on move outside the board", func(t *testing.T) {
		_, err := Apply(InitialState(), entity.Move{Row: 3, Col: 0})

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Negative cell", func(t *testing.T) {
		_, err := Apply(InitialState(), entity.Move{Row: 0, Col: -1})

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}

func TestWinner(t *testing.T) {
	t.Run("Winner X on a column", func(t *testing.T) {
		// Given: X holds the first column
		board := entity.Board{
			x, o, e,
			x, o, e,
			x, e, e,
		}

		// When: checking the winner
		winner, ok := Winner(board)

		// Then: X wins
		require.True(t, ok)
		assert.Equal(t, x, winner)
		assert.Equal(t, entity.XWins, Outcome(board))
	})

	t.Run("Winner O on a diagonal", func(t *testing.T) {
		board := entity.Board{
			x, x, o,
			x, o, e,
			o, e, e,
		}

		winner, ok := Winner(board)

		require.True(t, ok)
		assert.Equal(t, o, winner)
		assert.Equal(t, entity.OWins, Outcome(board))
	})

	t.Run("No winner in an ongoing game", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			e, o, e,
			x, e, e,
		}

		_, ok := Winner(board)

		assert.False(t, ok)
		assert.False(t, Terminal(board))
	})

	t.Run("Tie", func(t *testing.T) {
		// Given: a full board with no line
		board := entity.Board{
			o, x, o,
			o, x, x,
			x, o, x,
		}

		// Then: there is no winner but the game is over
		_, ok := Winner(board)
		assert.False(t, ok)
		assert.True(t, Terminal(board))
		assert.Equal(t, entity.Draw, Outcome(board))
		assert.Equal(t, entity.ScoreDraw, Utility(board))
	})

	t.Run("A win on the last cell is a win, not a draw", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			o, x, o,
			o, x, x,
		}

		assert.Equal(t, entity.XWins, Outcome(board))
		assert.Equal(t, entity.ScoreWin, Utility(board))
	})
}

func TestRules_ReachableBoards(t *testing.T) {
	boards := reachableBoards(t)

	// 5478 distinct legal positions, terminal ones included
	require.Len(t, boards, 5478)

	for _, board := range boards {
		winner, hasWinner := Winner(board)
		lineFilled := hasLine(board, x) || hasLine(board, o)

		// winner is set exactly when a line holds three equal marks
		assert.Equal(t, lineFilled, hasWinner, board.String())

		// the winner is always the player who just moved
		if hasWinner {
			assert.Equal(t, CurrentPlayer(board).Opponent(), winner, board.String())
		}

		// terminal iff a winner or no legal moves
		assert.Equal(t, hasWinner || len(LegalMoves(board)) == 0, Terminal(board), board.String())

		require.NoError(t, Validate(board), board.String())

		if Terminal(board) {
			switch winner {
			case x:
				assert.Equal(t, entity.ScoreWin, Utility(board))
			case o:
				assert.Equal(t, entity.ScoreLoss, Utility(board))
			default:
				assert.Equal(t, entity.ScoreDraw, Utility(board))
			}
			continue
		}

		filled := entity.BoardSize - board.Count(e)
		legal := map[entity.Move]bool{}
		for _, move := range LegalMoves(board) {
			legal[move] = true

			next, err := Apply(board, move)
			require.NoError(t, err)
			assert.Equal(t, filled+1, entity.BoardSize-next.Count(e))
		}

		for i := 0; i < entity.BoardSize; i++ {
			move := entity.MoveFromIndex(i)
			if legal[move] {
				continue
			}

			_, err := Apply(board, move)
			assert.ErrorIs(t, err, apperror.ErrIllegalMove)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("Valid board", func(t *testing.T) {
		board := entity.Board{x, o, x, e, e, e, e, e, e}

		assert.NoError(t, Validate(board))
	})

	t.Run("O ahead of X", func(t *testing.T) {
		board := entity.Board{o, e, e, e, e, e, e, e, e}

		assert.ErrorIs(t, Validate(board), apperror.ErrInvalidBoard)
	})

	t.Run("X two moves ahead", func(t *testing.T) {
		board := entity.Board{x, x, e, e, e, e, e, e, e}

		assert.ErrorIs(t, Validate(board), apperror.ErrInvalidBoard)
	})

	t.Run("Both players have a line", func(t *testing.T) {
		board := entity.Board{
			x, x, x,
			o, o, o,
			e, e, e,
		}

		err := Validate(board)

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
		assert.Contains(t, err.Error(), "both players")
	})

	t.Run("Play continued after X won", func(t *testing.T) {
		board := entity.Board{
			x, x, x,
			o, o, e,
			o, e, e,
		}

		assert.ErrorIs(t, Validate(board), apperror.ErrInvalidBoard)
	})

	t.Run("Play continued after O won", func(t *testing.T) {
		board := entity.Board{
			o, o, o,
			x, x, e,
			x, x, e,
		}

		assert.ErrorIs(t, Validate(board), apperror.ErrInvalidBoard)
	})
}
