// Package protocol is a line-oriented text driver for scripting and move
// generation checks: one command per line in, plain text out.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/mailboxchess/internal/board"
	"github.com/hailam/mailboxchess/internal/game"
)

// Handler reads commands from in and writes replies to out. Errors go to
// out prefixed with "error:" so a script can keep going.
type Handler struct {
	session *game.Session
	in      io.Reader
	out     io.Writer
}

// New creates a handler at the starting position.
func New(in io.Reader, out io.Writer) *Handler {
	return &Handler{
		session: game.NewSession(),
		in:      in,
		out:     out,
	}
}

// Run processes commands until quit or end of input.
func (h *Handler) Run() error {
	scanner := bufio.NewScanner(h.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "isready":
			fmt.Fprintln(h.out, "readyok")
		case "new", "ucinewgame":
			h.session.Reset()
		case "position":
			h.handlePosition(args)
		case "move":
			h.handleMoves(args)
		case "undo":
			if err := h.session.Undo(); err != nil {
				h.errorf("%v", err)
			}
		case "moves":
			h.handleList()
		case "status":
			fmt.Fprintln(h.out, h.session.Message())
		case "d":
			fmt.Fprint(h.out, h.session.State().String())
			fmt.Fprintln(h.out, h.session.Message())
		case "perft":
			h.handlePerft(args)
		case "divide":
			h.handleDivide(args)
		case "quit":
			return nil
		default:
			h.errorf("unknown command: %s", cmd)
		}
	}
	return scanner.Err()
}

func (h *Handler) errorf(format string, args ...any) {
	fmt.Fprintf(h.out, "error: "+format+"\n", args...)
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
func (h *Handler) handlePosition(args []string) {
	if len(args) == 0 || args[0] != "startpos" {
		h.errorf("only startpos positions are supported")
		return
	}
	h.session.Reset()
	if len(args) > 2 && args[1] == "moves" {
		h.handleMoves(args[2:])
	}
}

// handleMoves plays moves in order and stops at the first one that fails.
func (h *Handler) handleMoves(notations []string) {
	for _, n := range notations {
		if _, err := h.session.Play(n); err != nil {
			h.errorf("%v", err)
			return
		}
	}
}

func (h *Handler) handleList() {
	moves := h.session.Moves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.Notation()
	}
	fmt.Fprintf(h.out, "%d: %s\n", len(moves), strings.Join(names, " "))
}

func parseDepth(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return 0, fmt.Errorf("invalid depth %q", args[0])
	}
	return depth, nil
}

// handlePerft runs a perft test.
func (h *Handler) handlePerft(args []string) {
	depth, err := parseDepth(args, 3)
	if err != nil {
		h.errorf("%v", err)
		return
	}

	start := time.Now()
	nodes := board.Perft(h.session.State(), depth)
	elapsed := time.Since(start)

	fmt.Fprintf(h.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(h.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(h.out, "NPS: %.0f\n", nps)
	}
}

// handleDivide prints the perft count below each root move.
func (h *Handler) handleDivide(args []string) {
	depth, err := parseDepth(args, 1)
	if err != nil || depth < 1 {
		h.errorf("divide needs a depth of at least 1")
		return
	}

	var total int64
	for _, e := range board.Divide(h.session.State(), depth) {
		fmt.Fprintf(h.out, "%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	fmt.Fprintf(h.out, "Nodes: %d\n", total)
}
