// Package limiter windows a candidate list before it reaches the
// prompt: skip a prefix, cap the count, or keep only the tail. Useful
// when piping very large inputs where only a slice is worth picking
// from.
package limiter

import "fmt"

// Config holds the candidate-windowing parameters.
type Config struct {
	Limit  int // keep only this many candidates (0 = unlimited)
	Offset int // skip the first N candidates (0 = no skip)
	Tail   int // keep only the last N candidates (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting parameter combinations.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any windowing is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply returns the configured window of candidates. Input order is
// preserved; the result aliases the input slice.
func Apply[T any](c Config, candidates []T) []T {
	if !c.IsActive() {
		return candidates
	}

	length := len(candidates)

	if c.Tail > 0 {
		start := length - c.Tail
		if start < 0 {
			start = 0
		}
		return candidates[start:]
	}

	start := c.Offset
	if start > length {
		start = length
	}

	end := length
	if c.Limit > 0 {
		end = start + c.Limit
		if end > length {
			end = length
		}
	}
	if start > end {
		start = end
	}

	return candidates[start:end]
}
