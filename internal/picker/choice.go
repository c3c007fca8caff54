// Package picker holds the interactive selection core: the candidate
// set, the incremental fuzzy filter over it, the cursor state machine,
// and multi-select bookkeeping. It consumes raw query text and abstract
// actions and produces plain data for rendering; it never draws.
package picker

import (
	"errors"
	"fmt"
)

// Separator is the sentinel value other prompt kinds use to render a
// visual divider between choice groups. The fuzzy picker has no stable
// notion of "between" once results are re-ranked per keystroke, so it
// rejects separators at construction.
type Separator struct {
	Line string
}

// ErrSeparator is returned by NewSession when a choice carries a
// Separator value.
var ErrSeparator = errors.New("fuzzy picker does not accept separator choices")

// Choice is a caller-supplied selectable item.
type Choice struct {
	Name  string
	Value any
}

// Candidate is a Choice adopted into a session. Enabled is the
// multi-select flag; Index is the original construction position and
// never changes. Candidates are only ever hidden by filtering, never
// removed, so Enabled survives any amount of filtering churn.
type Candidate struct {
	Name    string
	Value   any
	Enabled bool
	Index   int
}

func buildCandidates(choices []Choice) ([]*Candidate, error) {
	if len(choices) == 0 {
		return nil, errors.New("at least one choice is required")
	}
	out := make([]*Candidate, len(choices))
	for i, c := range choices {
		switch c.Value.(type) {
		case Separator, *Separator:
			return nil, fmt.Errorf("choice %d (%q): %w", i, c.Name, ErrSeparator)
		}
		out[i] = &Candidate{Name: c.Name, Value: c.Value, Index: i}
	}
	return out, nil
}
