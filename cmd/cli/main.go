package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/config"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
	"github.com/iamasit07/4-in-a-row/hotseat/pkg/logging"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<n> - drop a piece in column n\n")
	io.WriteString(w, "new [color1 color2] - start a new game\n")
	io.WriteString(w, "board - show the board\n")
	io.WriteString(w, "exit - quit\n")
}

type shell struct {
	session *game.Session
	out     io.Writer
}

func (sh *shell) render(snap domain.Snapshot) {
	fmt.Fprint(sh.out, domain.FormatGrid(snap.Board))
	if snap.Status.Terminal() {
		fmt.Fprintln(sh.out, snap.Message)
		fmt.Fprintln(sh.out, "type 'new' to play again")
		return
	}
	fmt.Fprintf(sh.out, "player %d to move\n", snap.ActivePlayer)
}

// execute runs one command line against the session. It returns false when
// the user asked to quit.
func (sh *shell) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch cmd := fields[0]; cmd {
	case "exit", "bye":
		return false
	case "help":
		usage(sh.out)
	case "new":
		var c1, c2 string
		if len(fields) > 2 {
			c1, c2 = fields[1], fields[2]
		}
		if _, err := sh.session.Start(c1, c2); err != nil {
			fmt.Fprintln(sh.out, "error:", err)
		}
	case "board":
		snap, ok := sh.session.Snapshot()
		if !ok {
			fmt.Fprintln(sh.out, "no game yet, type 'new'")
			return true
		}
		sh.render(snap)
	default:
		column, err := strconv.Atoi(cmd)
		if err != nil {
			fmt.Fprintf(sh.out, "unknown command %q, type 'help'\n", cmd)
			return true
		}
		res, err := sh.session.DropPiece(context.Background(), column)
		switch {
		case errors.Is(err, game.ErrNoGame):
			fmt.Fprintln(sh.out, "no game yet, type 'new'")
		case err != nil:
			fmt.Fprintln(sh.out, "error:", err)
		case !res.Placed:
			fmt.Fprintf(sh.out, "column %d is full\n", column)
		}
	}
	return true
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, true)

	// keyboard input is already serial, so the terminal needs no input gate
	session := game.NewSession(game.Options{
		Rows:         cfg.BoardRows,
		Columns:      cfg.BoardColumns,
		Player1Color: cfg.Player1Color,
		Player2Color: cfg.Player2Color,
	})

	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31mconnect4>\033[0m ",
		HistoryFile: "/tmp/connect4.readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}
	defer l.Close()

	sh := &shell{session: session, out: l.Stdout()}
	session.Subscribe(sh.render)
	usage(l.Stderr())
	if _, err := session.Start("", ""); err != nil {
		log.Fatal().Err(err).Msg("start")
	}

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if !sh.execute(line) {
			break
		}
	}
}
