// Package resolve implements multi-key record resolution: canonical key
// candidates are probed against storage in a fixed priority order and the
// first hit wins.
package resolve

import (
	"context"
	"errors"
)

// ErrNoMatch indicates that none of the candidate keys matched a record.
var ErrNoMatch = errors.New("no record matched any candidate key")

// Candidate pairs a canonical key name with the value to look up. Candidates
// with an empty value are skipped.
type Candidate struct {
	Key   string
	Value string
}

// FindFunc looks a record up by an exact key/value match. The boolean
// reports whether a record was found; errors abort resolution immediately.
type FindFunc[T any] func(ctx context.Context, key, value string) (T, bool, error)

// FirstMatch probes storage for each candidate in order and returns the
// first record found together with the key name that matched. ErrNoMatch is
// returned when every candidate misses.
func FirstMatch[T any](ctx context.Context, candidates []Candidate, find FindFunc[T]) (T, string, error) {
	var zero T
	for _, candidate := range candidates {
		if candidate.Value == "" {
			continue
		}
		record, found, err := find(ctx, candidate.Key, candidate.Value)
		if err != nil {
			return zero, "", err
		}
		if found {
			return record, candidate.Key, nil
		}
	}
	return zero, "", ErrNoMatch
}
