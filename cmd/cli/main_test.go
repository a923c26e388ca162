package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
)

func newTestShell() (*shell, *bytes.Buffer) {
	var out bytes.Buffer
	session := game.NewSession(game.Options{Rows: 4, Columns: 4})
	sh := &shell{session: session, out: &out}
	session.Subscribe(sh.render)
	return sh, &out
}

func TestShell(t *testing.T) {
	t.Run("Drop before new", func(t *testing.T) {
		sh, out := newTestShell()

		require.True(t, sh.execute("0"))
		assert.Contains(t, out.String(), "no game yet")
	})

	t.Run("Play to a win", func(t *testing.T) {
		sh, out := newTestShell()
		require.True(t, sh.execute("new"))
		assert.Contains(t, out.String(), "player 1 to move")

		for _, line := range []string{"0", "1", "0", "1", "0", "1"} {
			require.True(t, sh.execute(line))
		}
		out.Reset()
		require.True(t, sh.execute("0"))

		assert.Equal(t, "1 . . .\n1 2 . .\n1 2 . .\n1 2 . .\n0 1 2 3\nPlayer 1 wins!\ntype 'new' to play again\n", out.String())

		out.Reset()
		require.True(t, sh.execute("2"))
		assert.Contains(t, out.String(), "game is already over")
	})

	t.Run("Full column and bad input", func(t *testing.T) {
		sh, out := newTestShell()
		require.True(t, sh.execute("new red blue"))
		for i := 0; i < 4; i++ {
			require.True(t, sh.execute("3"))
		}

		out.Reset()
		require.True(t, sh.execute("3"))
		assert.Equal(t, "column 3 is full\n", out.String())

		out.Reset()
		require.True(t, sh.execute("9"))
		assert.Contains(t, out.String(), "invalid column")

		out.Reset()
		require.True(t, sh.execute("jump"))
		assert.Contains(t, out.String(), "unknown command")
	})

	t.Run("Exit", func(t *testing.T) {
		sh, _ := newTestShell()
		assert.False(t, sh.execute("exit"))
		assert.True(t, sh.execute("   "))
	})
}
