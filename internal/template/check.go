package template

import (
	"regexp"
	"strings"
	"time"
)

// Severity grades a template problem.
type Severity int

const (
	// Warn marks tokens that work but probably not as intended.
	Warn Severity = iota
	// Error marks tokens that can never resolve.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Problem is a defect found by static template analysis.
type Problem struct {
	Token    string
	Severity Severity
	Message  string
}

// checkTime is an arbitrary fixed instant; Check only cares whether a
// date directive formats at all.
var checkTime = time.Date(2024, time.January, 15, 13, 14, 15, 0, time.UTC)

var markerSegmentRe = regexp.MustCompile(`^[\w-]+$`)

// Check analyzes a template without a parameter tree and reports the
// problems that are visible statically: unknown date directives,
// malformed node references and suspicious path markers.
func Check(spec string) []Problem {
	var problems []Problem
	for _, tok := range ParseList(spec) {
		switch tok.Kind {
		case KindDate:
			if _, ok := Strftime(tok.Raw, checkTime); !ok {
				problems = append(problems, Problem{
					Token:    tok.Raw,
					Severity: Error,
					Message:  "unknown date directive",
				})
			}
		case KindPathMarker:
			if tok.Segment == "" {
				problems = append(problems, Problem{
					Token:    tok.Raw,
					Severity: Warn,
					Message:  "path marker has no folder name",
				})
			} else if !markerSegmentRe.MatchString(tok.Segment) {
				problems = append(problems, Problem{
					Token:    tok.Raw,
					Severity: Warn,
					Message:  "path marker contains characters that will be replaced",
				})
			}
		case KindLiteral:
			if p, ok := malformedNodeRef(tok.Raw); ok {
				problems = append(problems, p)
			}
		}
	}
	return problems
}

// malformedNodeRef flags literals that look like an attempt at a node
// reference, e.g. "5.3.seed" or "5.".
func malformedNodeRef(raw string) (Problem, bool) {
	head, _, found := strings.Cut(raw, ".")
	if !found || head == "" || !allDigits(head) {
		return Problem{}, false
	}
	return Problem{
		Token:    raw,
		Severity: Error,
		Message:  `malformed node reference, expected "<id>.<input>"`,
	}, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
