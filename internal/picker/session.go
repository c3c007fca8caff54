package picker

import (
	"reflect"
	"sort"

	"github.com/oakwood-commons/pickx/internal/fuzzy"
)

// Action is one abstract input consumed by Apply. Every action runs to
// completion synchronously; there is no queueing and no partial state.
type Action string

const (
	ActionMoveDown      Action = "move_down"
	ActionMoveUp        Action = "move_up"
	ActionToggleCurrent Action = "toggle_current"
	ActionToggleAllOn   Action = "toggle_all_on"
	ActionToggleAllOff  Action = "toggle_all_off"
	ActionToggleInvert  Action = "toggle_invert"
)

// entry is one row of the filtered view: a candidate plus the match
// data for the query that produced the view.
type entry struct {
	cand    *Candidate
	score   float64
	matched []int
}

// Row is the render-facing projection of a filtered-view entry.
type Row struct {
	Name     string
	Matched  []int
	Enabled  bool
	IsCursor bool
}

// Counts summarizes the session for status display.
type Counts struct {
	Filtered int
	Total    int
	Enabled  int
}

// Result is an assembled commit outcome. For single-select sessions
// Value holds the chosen value (nil when the view was empty). For
// multi-select sessions Values and Names hold the enabled candidates in
// original construction order, or the cursor fallback.
type Result struct {
	Multi  bool
	Value  any
	Name   string
	Values []any
	Names  []string
}

// Config is the construction-time contract for a Session. It is
// resolved once; the session never consults ambient state afterwards.
type Config struct {
	Choices     []Choice
	Multiselect bool

	// Default preselects the initial cursor on the candidate whose
	// value is equal to it. Unknown values leave the cursor at 0.
	Default any

	// Validate, when set, gates Commit. A non-nil error marks the
	// session invalid with the error's message and leaves everything
	// else untouched.
	Validate Validator
}

// Session owns the candidate set, the current query's filtered view,
// the cursor, and the multi-select flags. It is single-goroutine by
// contract: every keystroke's work completes before the next one.
type Session struct {
	candidates  []*Candidate
	multiselect bool
	validate    Validator

	query      string
	view       []entry
	cursor     int
	invalid    bool
	invalidMsg string
}

// NewSession builds a session from cfg. Separator choices and an empty
// choice list are configuration errors.
func NewSession(cfg Config) (*Session, error) {
	cands, err := buildCandidates(cfg.Choices)
	if err != nil {
		return nil, err
	}
	s := &Session{
		candidates:  cands,
		multiselect: cfg.Multiselect,
		validate:    cfg.Validate,
	}
	s.refilter()
	if cfg.Default != nil {
		for i, e := range s.view {
			if reflect.DeepEqual(e.cand.Value, cfg.Default) {
				s.cursor = i
				break
			}
		}
	}
	return s, nil
}

// Query returns the query the current view was built from.
func (s *Session) Query() string { return s.query }

// Multiselect reports whether multi-select toggles are active.
func (s *Session) Multiselect() bool { return s.multiselect }

// SetQuery replaces the live query and recomputes the filtered view,
// then reclamps the cursor so it lands on a valid position. Repeating
// the current query is a no-op. Any pending invalid state is cleared:
// the user editing is how they recover from a failed commit.
func (s *Session) SetQuery(q string) {
	if q == s.query {
		return
	}
	s.query = q
	s.invalid = false
	s.invalidMsg = ""
	s.refilter()
	s.clampCursor()
}

// refilter recomputes the view for the current query. The empty query
// short-circuits to the full candidate set in original order; the
// matcher is never invoked for it.
func (s *Session) refilter() {
	if s.query == "" {
		s.view = make([]entry, len(s.candidates))
		for i, c := range s.candidates {
			s.view[i] = entry{cand: c}
		}
		return
	}
	view := make([]entry, 0, len(s.candidates))
	for _, c := range s.candidates {
		res, ok := fuzzy.Match(s.query, c.Name)
		if !ok {
			continue
		}
		view = append(view, entry{cand: c, score: res.Score, matched: res.Positions})
	}
	// Stable sort: candidates were visited in original order, so equal
	// scores keep their insertion order and the view is deterministic.
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].score > view[j].score
	})
	s.view = view
}

// clampCursor restores the cursor invariant after the view changed
// size. Shrinking past the cursor pulls it to the last row; an empty
// view parks it at 0 so a later non-empty view starts valid again.
func (s *Session) clampCursor() {
	if s.cursor > len(s.view)-1 {
		s.cursor = len(s.view) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// Apply runs one action against the session. Unknown actions and
// actions that need a non-empty view on an empty one are no-ops.
func (s *Session) Apply(a Action) {
	switch a {
	case ActionMoveDown:
		if n := len(s.view); n > 0 {
			s.cursor = (s.cursor + 1) % n
		}
	case ActionMoveUp:
		if n := len(s.view); n > 0 {
			s.cursor = (s.cursor - 1 + n) % n
		}
	case ActionToggleCurrent:
		if s.multiselect && len(s.view) > 0 {
			c := s.view[s.cursor].cand
			c.Enabled = !c.Enabled
		}
	case ActionToggleAllOn:
		s.setAll(true)
	case ActionToggleAllOff:
		s.setAll(false)
	case ActionToggleInvert:
		if s.multiselect {
			for _, c := range s.candidates {
				c.Enabled = !c.Enabled
			}
		}
	}
}

func (s *Session) setAll(v bool) {
	if !s.multiselect {
		return
	}
	for _, c := range s.candidates {
		c.Enabled = v
	}
}

// Cursor returns the current cursor position within the filtered view.
// It is only meaningful when the view is non-empty.
func (s *Session) Cursor() int { return s.cursor }

// Rows returns the filtered view in display order.
func (s *Session) Rows() []Row {
	rows := make([]Row, len(s.view))
	for i, e := range s.view {
		rows[i] = Row{
			Name:     e.cand.Name,
			Matched:  e.matched,
			Enabled:  e.cand.Enabled,
			IsCursor: i == s.cursor,
		}
	}
	return rows
}

// Counts returns filtered/total/enabled counts for the status line.
func (s *Session) Counts() Counts {
	c := Counts{Filtered: len(s.view), Total: len(s.candidates)}
	for _, cand := range s.candidates {
		if cand.Enabled {
			c.Enabled++
		}
	}
	return c
}

// Invalid reports whether the last commit failed validation, together
// with the message to display.
func (s *Session) Invalid() (bool, string) { return s.invalid, s.invalidMsg }

// enabled returns the enabled candidates in original order. Candidates
// are stored in construction order, so no sort is needed.
func (s *Session) enabled() []*Candidate {
	var out []*Candidate
	for _, c := range s.candidates {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// assemble builds the would-be commit result from the current state
// without mutating anything.
func (s *Session) assemble() Result {
	if !s.multiselect {
		r := Result{}
		if len(s.view) > 0 {
			cur := s.view[s.cursor].cand
			r.Value = cur.Value
			r.Name = cur.Name
		}
		return r
	}

	r := Result{Multi: true, Values: []any{}, Names: []string{}}
	enabled := s.enabled()
	if len(enabled) == 0 {
		// Bare Enter with no toggles still yields the highlighted row.
		if len(s.view) > 0 {
			cur := s.view[s.cursor].cand
			r.Values = append(r.Values, cur.Value)
			r.Names = append(r.Names, cur.Name)
		}
		return r
	}
	for _, c := range enabled {
		r.Values = append(r.Values, c.Value)
		r.Names = append(r.Names, c.Name)
	}
	return r
}

// Commit validates and returns the assembled result. On validation
// failure it reports ok=false, flags the session invalid, and changes
// nothing else; the caller keeps editing.
func (s *Session) Commit() (Result, bool) {
	r := s.assemble()
	if s.validate != nil {
		if err := s.validate(r); err != nil {
			s.invalid = true
			s.invalidMsg = err.Error()
			return Result{}, false
		}
	}
	s.invalid = false
	s.invalidMsg = ""
	return r, true
}
