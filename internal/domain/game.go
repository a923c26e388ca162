package domain

import "fmt"

// Game is the whole engine state. It has exactly one writer, DropPiece;
// everything else is a read.
type Game struct {
	board     *Board
	players   [2]Player
	active    PlayerID
	status    GameStatus
	winner    PlayerID
	moveCount int
	lastMove  *Move
}

func NewGame(rows, columns int, player1Color, player2Color string) (*Game, error) {
	board, err := NewBoard(rows, columns)
	if err != nil {
		return nil, err
	}

	return &Game{
		board: board,
		players: [2]Player{
			{ID: Player1, Color: player1Color},
			{ID: Player2, Color: player2Color},
		},
		active: Player1,
		status: StatusInProgress,
		winner: Empty,
	}, nil
}

// DropPiece plays the active player's piece into column and returns the row
// it landed in. A full column is ignored and reported as NoRow with a nil
// error.
func (g *Game) DropPiece(column int) (int, error) {
	if g.status.Terminal() {
		return NoRow, ErrInvalidState
	}

	row, err := g.board.LandingRow(column)
	if err != nil {
		return NoRow, err
	}
	if row == NoRow {
		return NoRow, nil
	}

	g.board.Place(row, column, g.active)
	g.moveCount++
	g.lastMove = &Move{Player: g.active, Row: row, Column: column}

	// win is checked before tie so a board filled by a winning move is a win
	if HasWin(g.board, g.active) {
		g.status = StatusWon
		g.winner = g.active
		return row, nil
	}

	if g.board.IsFull() {
		g.status = StatusTied
		return row, nil
	}

	g.active = g.active.Other()
	return row, nil
}

func (g *Game) Cell(row, column int) (PlayerID, error) {
	return g.board.Cell(row, column)
}

func (g *Game) ActivePlayer() PlayerID { return g.active }
func (g *Game) Status() GameStatus     { return g.status }

// Winner is Empty unless Status is StatusWon.
func (g *Game) Winner() PlayerID { return g.winner }

func (g *Game) IsFinished() bool { return g.status.Terminal() }
func (g *Game) MoveCount() int   { return g.moveCount }
func (g *Game) Board() *Board    { return g.board }

func (g *Game) LastMove() (Move, bool) {
	if g.lastMove == nil {
		return Move{}, false
	}
	return *g.lastMove, true
}

func (g *Game) Player(id PlayerID) (Player, bool) {
	if !id.Valid() {
		return Player{}, false
	}
	return g.players[id-1], true
}

func (g *Game) Players() []Player {
	return []Player{g.players[0], g.players[1]}
}

// Announcement is the end-of-game line shown to the players.
func (g *Game) Announcement() string {
	switch g.status {
	case StatusWon:
		return fmt.Sprintf("Player %d wins!", g.winner)
	case StatusTied:
		return "It's a tie!"
	}
	return ""
}
