package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Board is the 3x3 grid in row-major order. It is an array, so assigning or
// passing a Board copies it.
type Board [BoardSize]Mark

// Count returns how many cells hold the given mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}

	return n
}

// Key - compact form of the board, one symbol per cell with '.' for empty cells.
func (that Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}

func (that Board) String() string {
	key := that.Key()

	return key[0:3] + "/" + key[3:6] + "/" + key[6:9]
}

// ParseBoard - reads a board from its compact form. Row separators '/' and '|'
// are ignored, and '.', '_', '-' or a space stand for an empty cell.
func ParseBoard(s string) (Board, error) {
	var board Board

	i := 0
	for _, r := range s {
		var mark Mark

		switch r {
		case '/', '|':
			continue
		case '.', '_', '-', ' ':
			mark = EmptyCell
		case 'x', 'X':
			mark = PlayerX
		case 'o', 'O':
			mark = PlayerO
		default:
			return Board{}, fmt.Errorf("%w: unexpected symbol %q", apperror.ErrInvalidBoard, r)
		}

		if i >= BoardSize {
			return Board{}, fmt.Errorf("%w: more than %d cells in %q", apperror.ErrInvalidBoard, BoardSize, s)
		}

		board[i] = mark
		i++
	}

	if i != BoardSize {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", apperror.ErrInvalidBoard, i, BoardSize)
	}

	return board, nil
}

// Move is a (row, column) coordinate on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func MoveFromIndex(index int) Move {
	return Move{Row: index / BoardSide, Col: index % BoardSide}
}

func (that Move) Index() int {
	return that.Row*BoardSide + that.Col
}

func (that Move) Valid() bool {
	return that.Row >= 0 && that.Row < BoardSide && that.Col >= 0 && that.Col < BoardSide
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}
