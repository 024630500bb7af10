package template

import (
	"time"

	"github.com/raphi011/pix/internal/params"
)

// Resolved pairs a token with the value it produced. OK is false when the
// token could not be resolved against the parameter tree; name building
// skips such tokens instead of failing.
type Resolved struct {
	Token Token
	Value string
	OK    bool
}

// Resolve evaluates every token against the parameter tree. The result
// slice is aligned with tokens, one entry per token in order; duplicate
// tokens each get their own entry.
func Resolve(tokens []Token, tree params.Value, now time.Time) []Resolved {
	out := make([]Resolved, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, resolveOne(tok, tree, now))
	}
	return out
}

func resolveOne(tok Token, tree params.Value, now time.Time) Resolved {
	switch tok.Kind {
	case KindDate:
		s, ok := Strftime(tok.Raw, now)
		return Resolved{Token: tok, Value: s, OK: ok}

	case KindPathMarker:
		// Markers never consult the tree; an empty segment is dropped
		// later during name building.
		return Resolved{Token: tok, Value: tok.Segment, OK: true}

	case KindNodeRef:
		v, ok := tree.LookupNode(tok.NodeID, tok.Input)
		if !ok {
			return Resolved{Token: tok}
		}
		s, ok := v.Text()
		return Resolved{Token: tok, Value: s, OK: ok}

	default: // KindLiteral
		v, ok := tree.FindFirst(tok.Raw)
		if !ok {
			return Resolved{Token: tok}
		}
		// A composite match counts as present but unrenderable; the
		// search does not continue past it.
		s, ok := v.Text()
		return Resolved{Token: tok, Value: s, OK: ok}
	}
}
