package template

import (
	"regexp"
	"strings"
)

// Kind classifies a template token.
type Kind int

const (
	KindLiteral Kind = iota
	KindDate
	KindNodeRef
	KindPathMarker
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindNodeRef:
		return "node reference"
	case KindPathMarker:
		return "path marker"
	}
	return "literal"
}

// Token is one parsed unit of a template. Tokens are immutable once
// parsed.
type Token struct {
	Raw  string
	Kind Kind

	// NodeID and Input are set for node references ("5.seed").
	NodeID string
	Input  string

	// Segment is the path-marker text with its "./" or "../" prefix
	// stripped.
	Segment string
}

var nodeRefRe = regexp.MustCompile(`^(\d+)\.(\w+)$`)

// ParseList parses a comma-separated template into its tokens. Empty
// entries are dropped.
func ParseList(spec string) []Token {
	parts := strings.Split(spec, ",")
	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tokens = append(tokens, classify(p))
	}
	return tokens
}

// classify determines a token's kind. Precedence: date, path marker,
// node reference, literal.
func classify(raw string) Token {
	switch {
	case strings.HasPrefix(raw, "%"):
		return Token{Raw: raw, Kind: KindDate}
	case strings.HasPrefix(raw, "./"):
		return Token{Raw: raw, Kind: KindPathMarker, Segment: raw[2:]}
	case strings.HasPrefix(raw, "../"):
		return Token{Raw: raw, Kind: KindPathMarker, Segment: raw[3:]}
	}
	if m := nodeRefRe.FindStringSubmatch(raw); m != nil {
		return Token{Raw: raw, Kind: KindNodeRef, NodeID: m[1], Input: m[2]}
	}
	return Token{Raw: raw, Kind: KindLiteral}
}
