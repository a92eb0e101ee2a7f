// Package util holds small helpers shared by the CLI and the player UI.
package util

import (
	"fmt"
	"os"

	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify renders a count with the matching noun, e.g. "1 cue", "3 cues".
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// TerminalSize returns the size of the terminal attached to stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Max returns the largest argument, or the zero value when there is none.
func Max[T constraints.Ordered](items ...T) (max T) {
	for i, item := range items {
		if i == 0 || item > max {
			max = item
		}
	}
	return max
}
