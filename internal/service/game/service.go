package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/pkg/uid"
)

var (
	ErrNoGame      = errors.New("no game has been started")
	ErrInputPaused = errors.New("input is paused, try again shortly")
)

// InputGate debounces drop requests. Acquire returns false while the gate
// for key is closed, and closes it when it returns true.
type InputGate interface {
	Acquire(ctx context.Context, key string) (bool, error)
}

type Options struct {
	Rows         int
	Columns      int
	Player1Color string
	Player2Color string
	Gate         InputGate
}

// MoveResult describes the outcome of a drop request that reached the engine.
type MoveResult struct {
	Row    int             `json:"row"`
	Column int             `json:"column"`
	Placed bool            `json:"placed"`
	State  domain.Snapshot `json:"state"`
}

// Session owns the current game. It is the only writer; renderers read
// snapshots or subscribe to changes.
type Session struct {
	opts Options

	mu          sync.Mutex
	gameID      string
	game        *domain.Game
	subscribers map[int]func(domain.Snapshot)
	nextSubID   int
	// pending holds changes in the order they were applied, waiting for
	// delivery; appended under mu, drained under notifyMu.
	pending []notification

	notifyMu sync.Mutex
}

type notification struct {
	subs []func(domain.Snapshot)
	snap domain.Snapshot
}

func NewSession(opts Options) *Session {
	if opts.Rows == 0 {
		opts.Rows = domain.DefaultRows
	}
	if opts.Columns == 0 {
		opts.Columns = domain.DefaultColumns
	}
	if opts.Gate == nil {
		opts.Gate = NewMemoryGate(0)
	}

	return &Session{
		opts:        opts,
		subscribers: make(map[int]func(domain.Snapshot)),
	}
}

// Start replaces the current game, if any, with a fresh one. Empty colors
// fall back to the configured defaults.
func (s *Session) Start(player1Color, player2Color string) (domain.Snapshot, error) {
	if player1Color == "" {
		player1Color = s.opts.Player1Color
	}
	if player2Color == "" {
		player2Color = s.opts.Player2Color
	}

	g, err := domain.NewGame(s.opts.Rows, s.opts.Columns, player1Color, player2Color)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to create game: %w", err)
	}

	s.mu.Lock()
	s.gameID = uid.GenerateGameID()
	s.game = g
	snap := g.Snapshot(s.gameID)
	s.enqueue(snap)
	s.mu.Unlock()

	log.Info().Str("component", "session").Str("game_id", snap.GameID).
		Int("rows", snap.Rows).Int("columns", snap.Columns).Msg("game started")

	s.flush()
	return snap, nil
}

// DropPiece forwards a column choice from the input layer to the engine.
// A full column yields Placed=false and no notification.
func (s *Session) DropPiece(ctx context.Context, column int) (MoveResult, error) {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return MoveResult{}, ErrNoGame
	}
	if s.game.IsFinished() {
		s.mu.Unlock()
		return MoveResult{}, domain.ErrInvalidState
	}
	gameID := s.gameID
	s.mu.Unlock()

	open, err := s.opts.Gate.Acquire(ctx, gameID)
	if err != nil {
		return MoveResult{}, fmt.Errorf("input gate: %w", err)
	}
	if !open {
		return MoveResult{}, ErrInputPaused
	}

	s.mu.Lock()
	// Start may have replaced the game while the gate was consulted
	if s.gameID != gameID {
		s.mu.Unlock()
		return MoveResult{}, ErrInputPaused
	}

	player := s.game.ActivePlayer()
	row, err := s.game.DropPiece(column)
	if err != nil {
		s.mu.Unlock()
		return MoveResult{}, err
	}

	result := MoveResult{
		Row:    row,
		Column: column,
		Placed: row != domain.NoRow,
		State:  s.game.Snapshot(gameID),
	}
	if result.Placed {
		s.enqueue(result.State)
	}
	s.mu.Unlock()

	if !result.Placed {
		log.Debug().Str("component", "session").Int("column", column).Msg("column full, move ignored")
		return result, nil
	}

	logger := log.With().Str("component", "session").Str("game_id", gameID).Logger()
	logger.Debug().Int("player", int(player)).Int("row", row).Int("column", column).Msg("piece dropped")
	if result.State.Status.Terminal() {
		logger.Info().Str("status", string(result.State.Status)).Int("moves", result.State.MoveCount).
			Msg(result.State.Message)
	}

	s.flush()
	return result, nil
}

// Snapshot returns the current game, or false before the first Start.
func (s *Session) Snapshot() (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return domain.Snapshot{}, false
	}
	return s.game.Snapshot(s.gameID), true
}

// Subscribe registers fn to receive a snapshot after every state change.
// Snapshots arrive in the order the changes were applied. fn runs outside
// the session lock and must not call Start or DropPiece.
func (s *Session) Subscribe(fn func(domain.Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// enqueue records a change for delivery; caller must hold s.mu.
func (s *Session) enqueue(snap domain.Snapshot) {
	subs := make([]func(domain.Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.pending = append(s.pending, notification{subs: subs, snap: snap})
}

// flush delivers pending changes oldest first. Whoever holds notifyMu
// drains the queue, including entries queued by concurrent callers.
func (s *Session) flush() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return
		}
		n := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, fn := range n.subs {
			fn(n.snap)
		}
	}
}
