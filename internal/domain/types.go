package domain

import "fmt"

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Other returns the opponent of p. Empty has no opponent.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Player pairs an identifier with its display color.
// Color is only ever read by renderers.
type Player struct {
	ID    PlayerID `json:"id"`
	Color string   `json:"color"`
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4
)

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusTied       GameStatus = "tied"
)

func (s GameStatus) Terminal() bool {
	return s == StatusWon || s == StatusTied
}

// Move records where a piece landed.
type Move struct {
	Player PlayerID `json:"player"`
	Row    int      `json:"row"`
	Column int      `json:"column"`
}

func (m Move) String() string {
	return fmt.Sprintf("player %d -> (%d,%d)", m.Player, m.Row, m.Column)
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "invalid column"
	ErrInvalidRow        Error = "invalid row"
	ErrInvalidState      Error = "game is already over"
	ErrInvalidDimensions Error = "board dimensions must be positive"
)
