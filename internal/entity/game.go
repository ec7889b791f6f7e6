package entity

import "time"

type Outcome string

const (
	InProgress Outcome = "in_progress"
	XWins      Outcome = "x_wins"
	OWins      Outcome = "o_wins"
	Draw       Outcome = "draw"
)

// Score is the value of a board from PlayerX's point of view.
type Score int

const (
	ScoreLoss Score = -1
	ScoreDraw Score = 0
	ScoreWin  Score = 1
)

// Solution is the result of searching a position. Nodes is the number of
// boards visited when the position was solved.
type Solution struct {
	Move   Move  `json:"move"`
	Score  Score `json:"score"`
	Nodes  int   `json:"nodes"`
	Cached bool  `json:"-"`
}

// Match - a game played out from a starting position. Kept in memory only.
type Match struct {
	ID      string    `json:"id"`
	Start   Board     `json:"start"`
	Final   Board     `json:"final"`
	Moves   []Move    `json:"moves"`
	Outcome Outcome   `json:"outcome"`
	Started time.Time `json:"started"`
}

func (that *Match) IsFinished() bool {
	return that.Outcome != "" && that.Outcome != InProgress
}

func (that *Match) IsDraw() bool {
	return that.Outcome == Draw
}
