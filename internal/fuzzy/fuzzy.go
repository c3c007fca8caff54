// Package fuzzy scores a query against candidate text using a
// weighted-subsequence alignment. A query matches when its characters
// appear in the candidate in order, case-insensitively; the score
// prefers matches at the start of the candidate, matches just after a
// word boundary, and tight consecutive runs over scattered ones.
//
// The scheme and its weights follow fzy (and the vim-clap port of it):
// two |haystack|x|query| score matrices are filled in one pass, then the
// chosen haystack positions are recovered by backtracking from the best
// final cell so the UI can highlight exactly the characters the score
// was paid for.
package fuzzy

import (
	"math"
	"unicode"
)

// Scoring weights. Gap penalties are per skipped haystack character;
// match bonuses are added on top of the running alignment score.
const (
	scoreGapLeading  = -0.005
	scoreGapTrailing = -0.005
	scoreGapInner    = -0.01

	scoreMatchConsecutive = 1.0
	scoreMatchSlash       = 0.9
	scoreMatchWord        = 0.8
	scoreMatchCapital     = 0.7
	scoreMatchDot         = 0.6
)

var (
	scoreMin = math.Inf(-1)
	scoreMax = math.Inf(1)
)

// maxHaystackLen bounds the DP matrices. Anything longer scores as a
// non-match rather than risking an oversized allocation per keystroke.
const maxHaystackLen = 1024

// Result is the outcome of a successful match: the alignment score and
// the haystack rune indices chosen for highlighting, in ascending order
// with one entry per query rune.
type Result struct {
	Score     float64
	Positions []int
}

// HasMatch reports whether query occurs in haystack as an ordered,
// case-insensitive subsequence. It is the cheap gate run before the
// quadratic scoring pass.
func HasMatch(query, haystack string) bool {
	i := 0
	q := []rune(query)
	if len(q) == 0 {
		return true
	}
	for _, r := range haystack {
		if unicode.ToLower(r) == unicode.ToLower(q[i]) {
			i++
			if i == len(q) {
				return true
			}
		}
	}
	return false
}

// Match scores query against haystack and reports whether it matched.
// The empty query is the caller's short-circuit case and never reaches
// here; Match treats it as a non-match so misuse stays visible.
func Match(query, haystack string) (Result, bool) {
	if query == "" || !HasMatch(query, haystack) {
		return Result{}, false
	}

	needle := lowerRunes(query)
	hay := []rune(haystack)
	n, m := len(needle), len(hay)

	if m > maxHaystackLen || n > m {
		// HasMatch guarantees n <= m in practice; the cap keeps the
		// per-keystroke cost bounded for pathological inputs.
		return Result{}, false
	}

	positions := make([]int, n)
	if n == m {
		// The subsequence check already passed, so equal lengths mean an
		// exact (case-insensitive) match. Best possible score.
		for i := range positions {
			positions[i] = i
		}
		return Result{Score: scoreMax, Positions: positions}, true
	}

	lowerHay := make([]rune, m)
	for i, r := range hay {
		lowerHay[i] = unicode.ToLower(r)
	}
	bonus := matchBonus(hay)

	// d[i][j]: best score for matching needle[..i] with needle[i]
	// aligned exactly at hay[j]. best[i][j]: best score for matching
	// needle[..i] using hay[..j], match at j or not. Backtracking over d
	// recovers the chosen positions.
	d := newMatrix(n, m)
	best := newMatrix(n, m)

	for i := 0; i < n; i++ {
		gap := scoreGapInner
		if i == n-1 {
			gap = scoreGapTrailing
		}
		prev := scoreMin
		for j := 0; j < m; j++ {
			if needle[i] == lowerHay[j] {
				score := scoreMin
				switch {
				case i == 0:
					score = float64(j)*scoreGapLeading + bonus[j]
				case j > 0:
					score = math.Max(
						best[i-1][j-1]+bonus[j],
						d[i-1][j-1]+scoreMatchConsecutive,
					)
				}
				d[i][j] = score
				prev = math.Max(score, prev+gap)
			} else {
				d[i][j] = scoreMin
				prev += gap
			}
			best[i][j] = prev
		}
	}

	// Walk back from the final cell. Once a consecutive-run edge is
	// taken the previous query rune must match at the adjacent cell, so
	// matchRequired forces the d-cell even when a gap scored equally.
	matchRequired := false
	for i, j := n-1, m-1; i >= 0; i-- {
		for ; j >= 0; j-- {
			if d[i][j] != scoreMin && (matchRequired || d[i][j] == best[i][j]) {
				matchRequired = i > 0 && j > 0 &&
					best[i][j] == d[i-1][j-1]+scoreMatchConsecutive
				positions[i] = j
				j--
				break
			}
		}
	}

	return Result{Score: best[n-1][m-1], Positions: positions}, true
}

// matchBonus precomputes, for every haystack position, the bonus earned
// by a match landing there: boundary characters and lower-to-upper case
// transitions make the following position more valuable.
func matchBonus(hay []rune) []float64 {
	bonus := make([]float64, len(hay))
	prev := '/'
	for i, r := range hay {
		bonus[i] = bonusFor(prev, r)
		prev = r
	}
	return bonus
}

func bonusFor(prev, r rune) float64 {
	switch {
	case !unicode.IsLetter(r) && !unicode.IsDigit(r):
		return 0
	case prev == '/':
		return scoreMatchSlash
	case prev == '-' || prev == '_' || prev == ' ':
		return scoreMatchWord
	case prev == '.':
		return scoreMatchDot
	case unicode.IsUpper(r) && unicode.IsLower(prev):
		return scoreMatchCapital
	default:
		return 0
	}
}

func lowerRunes(s string) []rune {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// newMatrix allocates an n x m float64 matrix backed by one slice.
func newMatrix(n, m int) [][]float64 {
	backing := make([]float64, n*m)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = backing[i*m : (i+1)*m]
	}
	return rows
}
