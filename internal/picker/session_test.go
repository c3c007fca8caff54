package picker

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fruitChoices() []Choice {
	return []Choice{
		{Name: "apple", Value: "apple"},
		{Name: "banana", Value: "banana"},
		{Name: "grape", Value: "grape"},
	}
}

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := NewSession(cfg)
	require.NoError(t, err)
	return s
}

// isSubsequence mirrors the matching contract: every filtered row must
// contain the query as an ordered, case-insensitive subsequence.
func isSubsequence(query, name string) bool {
	q := []rune(strings.ToLower(query))
	i := 0
	for _, r := range strings.ToLower(name) {
		if i < len(q) && r == q[i] {
			i++
		}
	}
	return i == len(q)
}

func TestNewSessionRejectsSeparator(t *testing.T) {
	_, err := NewSession(Config{Choices: []Choice{
		{Name: "a", Value: "a"},
		{Name: "---", Value: Separator{}},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSeparator)

	_, err = NewSession(Config{Choices: []Choice{
		{Name: "---", Value: &Separator{Line: "---"}},
	}})
	assert.ErrorIs(t, err, ErrSeparator)
}

func TestNewSessionRequiresChoices(t *testing.T) {
	_, err := NewSession(Config{})
	assert.Error(t, err)
}

func TestEmptyQueryShowsAllInOriginalOrder(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "apple", rows[0].Name)
	assert.Equal(t, "banana", rows[1].Name)
	assert.Equal(t, "grape", rows[2].Name)
	for _, r := range rows {
		assert.Empty(t, r.Matched)
	}
}

func TestFilterMatchesSubsequenceOnly(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	s.SetQuery("ap")

	rows := s.Rows()
	require.Len(t, rows, 2)
	// Both apple and grape contain "ap" in order; banana has no 'p'.
	assert.Equal(t, "apple", rows[0].Name, "start-of-name match ranks first")
	assert.Equal(t, "grape", rows[1].Name)
	for _, r := range rows {
		assert.True(t, isSubsequence("ap", r.Name))
	}
	assert.Equal(t, []int{0, 1}, rows[0].Matched)
	assert.Equal(t, []int{2, 3}, rows[1].Matched)
}

func TestFilterIsIdempotent(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	s.SetQuery("ap")
	first := s.Rows()
	s.SetQuery("ap") // no-op repeat
	s.SetQuery("a")
	s.SetQuery("ap")
	assert.Equal(t, first, s.Rows())
}

func TestFilterTieBreaksByOriginalOrder(t *testing.T) {
	s := newTestSession(t, Config{Choices: []Choice{
		{Name: "item one", Value: 1},
		{Name: "item two", Value: 2},
		{Name: "item ten", Value: 10},
	}})
	s.SetQuery("item")
	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "item one", rows[0].Name)
	assert.Equal(t, "item two", rows[1].Name)
	assert.Equal(t, "item ten", rows[2].Name)
}

func TestCursorWrapsBothWays(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})

	assert.Equal(t, 0, s.Cursor())
	s.Apply(ActionMoveDown)
	s.Apply(ActionMoveDown)
	assert.Equal(t, 2, s.Cursor())
	s.Apply(ActionMoveDown)
	assert.Equal(t, 0, s.Cursor(), "move_down wraps to top")
	s.Apply(ActionMoveUp)
	assert.Equal(t, 2, s.Cursor(), "move_up wraps to bottom")
}

func TestCursorClampsWhenViewShrinks(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	s.Apply(ActionMoveDown)
	s.Apply(ActionMoveDown)
	require.Equal(t, 2, s.Cursor())

	s.SetQuery("ap") // view shrinks to 2 rows
	assert.Equal(t, 1, s.Cursor())
}

func TestCursorSurvivesEmptyViewRoundTrip(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	s.Apply(ActionMoveDown)

	s.SetQuery("xyz")
	assert.Empty(t, s.Rows())
	assert.Equal(t, 0, s.Cursor())

	// Navigation on an empty view is a guarded no-op.
	s.Apply(ActionMoveDown)
	s.Apply(ActionMoveUp)
	assert.Equal(t, 0, s.Cursor())

	s.SetQuery("")
	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.True(t, rows[0].IsCursor, "cursor reset to a valid 0 after empty round trip")
}

func TestCursorInvariantUnderRandomishSequence(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	queries := []string{"a", "ap", "xyz", "", "gr", "x", "", "ban"}
	for i, q := range queries {
		s.SetQuery(q)
		s.Apply(ActionMoveDown)
		if i%2 == 0 {
			s.Apply(ActionMoveUp)
			s.Apply(ActionMoveUp)
		}
		n := len(s.Rows())
		if n == 0 {
			assert.Equal(t, 0, s.Cursor())
		} else {
			assert.GreaterOrEqual(t, s.Cursor(), 0)
			assert.Less(t, s.Cursor(), n)
		}
	}
}

func TestDefaultPreselectsCursor(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices(), Default: "banana"})
	assert.Equal(t, 1, s.Cursor())

	s = newTestSession(t, Config{Choices: fruitChoices(), Default: "plum"})
	assert.Equal(t, 0, s.Cursor(), "unknown default leaves cursor at 0")
}

func TestToggleCurrentOnlyInMultiselect(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	s.Apply(ActionToggleCurrent)
	assert.Equal(t, 0, s.Counts().Enabled)

	m := newTestSession(t, Config{Choices: fruitChoices(), Multiselect: true})
	m.Apply(ActionToggleCurrent)
	assert.Equal(t, 1, m.Counts().Enabled)
	m.Apply(ActionToggleCurrent)
	assert.Equal(t, 0, m.Counts().Enabled, "toggle flips back off")
}

func TestToggleAllRoundTrip(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices(), Multiselect: true})
	s.Apply(ActionToggleAllOn)
	assert.Equal(t, 3, s.Counts().Enabled)
	s.Apply(ActionToggleAllOff)
	assert.Equal(t, 0, s.Counts().Enabled)
}

func TestToggleInvertFlipsEachIndependently(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices(), Multiselect: true})
	s.Apply(ActionMoveDown)
	s.Apply(ActionToggleCurrent) // banana on
	s.Apply(ActionToggleInvert)

	r, ok := s.Commit()
	require.True(t, ok)
	assert.Equal(t, []any{"apple", "grape"}, r.Values)
}

func TestEnabledSurvivesFilteringChurn(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices(), Multiselect: true})
	s.Apply(ActionMoveDown) // banana
	s.Apply(ActionToggleCurrent)

	s.SetQuery("zzz")
	assert.Empty(t, s.Rows())
	s.SetQuery("")

	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.True(t, rows[1].Enabled, "banana stays enabled across hide/show")
	assert.Equal(t, 1, s.Counts().Enabled)
}

func TestCountsTrackFilteredAndTotal(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices(), Multiselect: true})
	s.Apply(ActionToggleCurrent)
	s.SetQuery("ap")

	c := s.Counts()
	assert.Equal(t, 2, c.Filtered)
	assert.Equal(t, 3, c.Total)
	assert.Equal(t, 1, c.Enabled)
}

func TestSingleSelectCommit(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	s.Apply(ActionMoveDown)

	r, ok := s.Commit()
	require.True(t, ok)
	assert.False(t, r.Multi)
	assert.Equal(t, "banana", r.Value)
	assert.Equal(t, "banana", r.Name)
}

func TestSingleSelectCommitOnEmptyViewIsNone(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices()})
	s.SetQuery("xyz")

	r, ok := s.Commit()
	require.True(t, ok)
	assert.Nil(t, r.Value)
}

func TestMultiselectCommitFallsBackToCursor(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices(), Multiselect: true})
	s.Apply(ActionMoveDown)
	s.Apply(ActionMoveDown)

	r, ok := s.Commit()
	require.True(t, ok)
	assert.Equal(t, []any{"grape"}, r.Values, "no toggles: bare Enter yields the highlighted value")
}

func TestMultiselectCommitReturnsOriginalOrder(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices(), Multiselect: true})
	// Enable grape first, then apple, via cursor moves.
	s.Apply(ActionMoveDown)
	s.Apply(ActionMoveDown)
	s.Apply(ActionToggleCurrent) // grape
	s.Apply(ActionMoveDown)      // wrap to apple
	s.Apply(ActionToggleCurrent) // apple

	r, ok := s.Commit()
	require.True(t, ok)
	assert.Equal(t, []any{"apple", "grape"}, r.Values, "original index order, not toggle order")
	assert.Equal(t, []string{"apple", "grape"}, r.Names)
}

func TestMultiselectCommitOnEmptyViewNothingEnabled(t *testing.T) {
	s := newTestSession(t, Config{Choices: fruitChoices(), Multiselect: true})
	s.SetQuery("xyz")

	r, ok := s.Commit()
	require.True(t, ok)
	assert.Empty(t, r.Values)
}

func TestCommitValidationFailureIsRecoverable(t *testing.T) {
	s := newTestSession(t, Config{
		Choices:     fruitChoices(),
		Multiselect: true,
		Validate: func(r Result) error {
			if len(r.Values) < 2 {
				return errors.New("pick at least two")
			}
			return nil
		},
	})
	s.Apply(ActionMoveDown)

	_, ok := s.Commit()
	require.False(t, ok)
	invalid, msg := s.Invalid()
	assert.True(t, invalid)
	assert.Equal(t, "pick at least two", msg)
	assert.Equal(t, 1, s.Cursor(), "failed commit leaves state untouched")

	// Editing clears the invalid flag.
	s.SetQuery("a")
	invalid, _ = s.Invalid()
	assert.False(t, invalid)

	// A later valid commit succeeds.
	s.SetQuery("")
	s.Apply(ActionToggleAllOn)
	_, ok = s.Commit()
	assert.True(t, ok)
}

func TestMinSelectedValidator(t *testing.T) {
	s := newTestSession(t, Config{
		Choices:     fruitChoices(),
		Multiselect: true,
		Validate:    MinSelected(2),
	})
	_, ok := s.Commit()
	assert.False(t, ok)

	s.Apply(ActionToggleCurrent)
	s.Apply(ActionMoveDown)
	s.Apply(ActionToggleCurrent)
	_, ok = s.Commit()
	assert.True(t, ok)
}
