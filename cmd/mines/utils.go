package main

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/vancomm/minefield/internal/session"
)

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// runScript executes one command per line. It stops at the first bad command
// and returns its line number (zero-based).
func runScript(s *session.Session, script string) (int, error) {
	for i, c := range byPiece(strings.TrimSpace(script), "\n") {
		if err := executeCommand(s, c); err != nil {
			return i, err
		}
	}
	return -1, nil
}

func printState(w io.Writer, s *session.Session) {
	fmt.Fprintf(w, "%s  mines %d  time %d  [%s %s]\n",
		s.Status(), s.MinesLeft(), s.Elapsed(), s.Policy().Level(), s.Params().Seed())
	fmt.Fprint(w, s.Grid().ToString(s.Width()))
}
