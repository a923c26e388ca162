package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()

	g, err := NewGame(DefaultRows, DefaultColumns, "red", "blue")
	require.NoError(t, err)
	return g
}

// requireGravity fails if any occupied cell has an empty cell below it.
func requireGravity(t *testing.T, b *Board) {
	t.Helper()

	for x := 0; x < b.Columns(); x++ {
		for y := 0; y < b.Rows()-1; y++ {
			if b.cells[y][x] != Empty {
				require.NotEqual(t, Empty, b.cells[y+1][x], "floating piece at (%d,%d)", y, x)
			}
		}
	}
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, Player1, g.ActivePlayer())
	assert.Equal(t, StatusInProgress, g.Status())
	assert.Equal(t, Empty, g.Winner())
	assert.Equal(t, 0, g.MoveCount())
	assert.Empty(t, g.Announcement())
	assert.Equal(t, []Player{{ID: Player1, Color: "red"}, {ID: Player2, Color: "blue"}}, g.Players())

	_, ok := g.LastMove()
	assert.False(t, ok)

	_, err := NewGame(0, 0, "", "")
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestGame_DropPiece(t *testing.T) {
	t.Run("Turns alternate", func(t *testing.T) {
		g := newTestGame(t)

		want := []PlayerID{Player1, Player2, Player1, Player2, Player1, Player2}
		for i, p := range want {
			require.Equal(t, p, g.ActivePlayer())
			row, err := g.DropPiece(i % DefaultColumns)
			require.NoError(t, err)

			cell, err := g.Cell(row, i%DefaultColumns)
			require.NoError(t, err)
			require.Equal(t, p, cell)
		}

		move, ok := g.LastMove()
		require.True(t, ok)
		assert.Equal(t, Move{Player: Player2, Row: DefaultRows - 1, Column: 5}, move)
		assert.Equal(t, 6, g.MoveCount())
	})

	t.Run("Invalid column", func(t *testing.T) {
		g := newTestGame(t)

		_, err := g.DropPiece(DefaultColumns)
		require.ErrorIs(t, err, ErrInvalidColumn)

		_, err = g.DropPiece(-1)
		require.ErrorIs(t, err, ErrInvalidColumn)

		// Then: nothing changed
		assert.Equal(t, Player1, g.ActivePlayer())
		assert.Equal(t, 0, g.MoveCount())
	})

	t.Run("Full column is ignored", func(t *testing.T) {
		g := newTestGame(t)

		for i := 0; i < DefaultRows; i++ {
			_, err := g.DropPiece(0)
			require.NoError(t, err)
		}
		before := g.Board().Grid()

		row, err := g.DropPiece(0)
		require.NoError(t, err)
		assert.Equal(t, NoRow, row)

		// Then: the turn did not pass and the board is unchanged
		assert.Equal(t, Player1, g.ActivePlayer())
		assert.Equal(t, before, g.Board().Grid())
		assert.Equal(t, DefaultRows, g.MoveCount())
	})

	t.Run("Vertical win in column zero", func(t *testing.T) {
		g := newTestGame(t)

		for i := 0; i < 3; i++ {
			_, err := g.DropPiece(0)
			require.NoError(t, err)
			_, err = g.DropPiece(1)
			require.NoError(t, err)
			require.Equal(t, StatusInProgress, g.Status())
		}

		row, err := g.DropPiece(0)
		require.NoError(t, err)
		assert.Equal(t, DefaultRows-4, row)

		assert.Equal(t, StatusWon, g.Status())
		assert.Equal(t, Player1, g.Winner())
		assert.Equal(t, Player1, g.ActivePlayer())
		assert.Equal(t, "Player 1 wins!", g.Announcement())
		assert.True(t, g.IsFinished())
	})

	t.Run("Full board without a run is a tie", func(t *testing.T) {
		g := newTestGame(t)

		// rows alternate 1122112 / 2211221, which has no run of four
		columns := []int{
			2, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 2,
			2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 6, 4, 4, 4,
			4, 4, 4, 5, 5, 5, 5, 5, 5, 6, 6, 6, 6, 6,
		}
		for i, x := range columns {
			require.Equal(t, StatusInProgress, g.Status(), "move %d", i)
			row, err := g.DropPiece(x)
			require.NoError(t, err)
			require.NotEqual(t, NoRow, row)
		}

		assert.Equal(t, StatusTied, g.Status())
		assert.Equal(t, Empty, g.Winner())
		assert.Equal(t, "It's a tie!", g.Announcement())
		assert.True(t, g.Board().IsFull())
		assert.Equal(t, DefaultRows*DefaultColumns, g.MoveCount())

		// Then: no further move is accepted
		before := g.Board().Grid()
		for x := 0; x < DefaultColumns; x++ {
			_, err := g.DropPiece(x)
			require.ErrorIs(t, err, ErrInvalidState)
		}
		assert.Equal(t, before, g.Board().Grid())
	})

	t.Run("Move after win is rejected", func(t *testing.T) {
		g := newTestGame(t)
		for _, x := range []int{0, 1, 0, 1, 0, 1, 0} {
			_, err := g.DropPiece(x)
			require.NoError(t, err)
		}
		require.Equal(t, StatusWon, g.Status())

		_, err := g.DropPiece(3)
		require.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, 7, g.MoveCount())
	})

	t.Run("Win on the last empty cell beats the tie", func(t *testing.T) {
		g, err := NewGame(1, 4, "", "")
		require.NoError(t, err)
		g.board.cells[0] = []PlayerID{Player1, Player1, Player1, Empty}

		_, err = g.DropPiece(3)
		require.NoError(t, err)

		assert.True(t, g.Board().IsFull())
		assert.Equal(t, StatusWon, g.Status())
		assert.Equal(t, Player1, g.Winner())
	})

	t.Run("Gravity holds after every drop", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for round := 0; round < 50; round++ {
			g := newTestGame(t)
			for !g.IsFinished() {
				_, err := g.DropPiece(rng.Intn(DefaultColumns))
				require.NoError(t, err)
				requireGravity(t, g.Board())
			}
		}
	})
}

func TestGame_Snapshot(t *testing.T) {
	g := newTestGame(t)
	_, err := g.DropPiece(3)
	require.NoError(t, err)

	snap := g.Snapshot("abc")

	assert.Equal(t, "abc", snap.GameID)
	assert.Equal(t, DefaultRows, snap.Rows)
	assert.Equal(t, DefaultColumns, snap.Columns)
	assert.Equal(t, Player2, snap.ActivePlayer)
	assert.Equal(t, "blue", snap.ActiveColor)
	assert.Equal(t, StatusInProgress, snap.Status)
	assert.Equal(t, 1, snap.Board[DefaultRows-1][3])
	require.NotNil(t, snap.LastMove)
	assert.Equal(t, Move{Player: Player1, Row: DefaultRows - 1, Column: 3}, *snap.LastMove)

	// Then: mutating the snapshot does not reach the game
	snap.Board[0][0] = 2
	cell, err := g.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Empty, cell)
}

func TestPlayerID_Other(t *testing.T) {
	assert.Equal(t, Player2, Player1.Other())
	assert.Equal(t, Player1, Player2.Other())
	assert.Equal(t, Empty, Empty.Other())
}
