// Package domain defines core data structures shared by the bot's services.
package domain

import (
	"fmt"
	"strings"
)

// Pair is a trading pair: the base asset being bought on signals and the
// quote asset it is paid with.
type Pair struct {
	// From is the base asset symbol (the coin mentioned in posts).
	From string
	// To is the quote asset symbol.
	To string
}

// ParsePair parses the "BASE_QUOTE" form used in configs and CLI flags.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, fmt.Errorf("invalid pair %q, expected BASE_QUOTE", s)
	}
	return Pair{From: parts[0], To: parts[1]}, nil
}

// String returns the underscore-separated representation.
func (p Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Symbol returns the concatenated venue symbol.
func (p Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}
