package domain

// Snapshot is a detached copy of a game for renderers.
type Snapshot struct {
	GameID       string     `json:"gameId"`
	Rows         int        `json:"rows"`
	Columns      int        `json:"columns"`
	Board        [][]int    `json:"board"`
	Players      []Player   `json:"players"`
	ActivePlayer PlayerID   `json:"activePlayer"`
	ActiveColor  string     `json:"activeColor"`
	Status       GameStatus `json:"status"`
	Winner       PlayerID   `json:"winner,omitempty"`
	MoveCount    int        `json:"moveCount"`
	LastMove     *Move      `json:"lastMove,omitempty"`
	Message      string     `json:"message,omitempty"`
}

func (g *Game) Snapshot(gameID string) Snapshot {
	active, _ := g.Player(g.active)
	snap := Snapshot{
		GameID:       gameID,
		Rows:         g.board.Rows(),
		Columns:      g.board.Columns(),
		Board:        g.board.Grid(),
		Players:      g.Players(),
		ActivePlayer: g.active,
		ActiveColor:  active.Color,
		Status:       g.status,
		Winner:       g.winner,
		MoveCount:    g.moveCount,
		Message:      g.Announcement(),
	}
	if move, ok := g.LastMove(); ok {
		snap.LastMove = &move
	}
	return snap
}

// ClientMessage is what a browser sends over the socket.
type ClientMessage struct {
	Type         string `json:"type"` // "start", "drop_piece", "sync"
	Column       int    `json:"column"`
	Player1Color string `json:"player1Color,omitempty"`
	Player2Color string `json:"player2Color,omitempty"`
}

type ServerMessage struct {
	Type    string    `json:"type"` // "state", "error"
	Message string    `json:"message,omitempty"`
	State   *Snapshot `json:"state,omitempty"`
}
