package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/Mackliffe/rent2own-engine/internal/domain/trend"
)

const defaultInitialCapacity = 64

// MemoryStore implements Store with a mutex-guarded map. Series are copied
// on the way in and out, so callers never share backing arrays.
type MemoryStore struct {
	mu              sync.RWMutex
	series          map[string]trend.Series
	segments        map[string]Segment
	initialCapacity int
}

// NewMemoryStore creates an empty in-memory segment store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{initialCapacity: defaultInitialCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.series = make(map[string]trend.Series, s.initialCapacity)
	s.segments = make(map[string]Segment, s.initialCapacity)
	return s
}

// Put replaces the series for a segment after validating its ordering.
func (s *MemoryStore) Put(ctx context.Context, seg Segment, series trend.Series) error {
	if err := validateOrdering(series); err != nil {
		return err
	}

	cp := make(trend.Series, len(series))
	copy(cp, series)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[seg.Key()] = cp
	s.segments[seg.Key()] = seg
	return nil
}

// Append adds one observation, creating the segment if absent.
func (s *MemoryStore) Append(ctx context.Context, seg Segment, p trend.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := seg.Key()
	existing := s.series[key]
	if n := len(existing); n > 0 {
		last := existing[n-1].Timestamp
		if p.Timestamp.Equal(last) {
			return fmt.Errorf("%w: %s at %s", ErrDuplicateTimestamp, key, p.Timestamp)
		}
		if p.Timestamp.Before(last) {
			return fmt.Errorf("%w: %s point at %s precedes %s", ErrUnorderedSeries, key, p.Timestamp, last)
		}
	}
	s.series[key] = append(existing, p)
	s.segments[key] = seg
	return nil
}

// Series returns a copy of the stored series.
func (s *MemoryStore) Series(ctx context.Context, seg Segment) (trend.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.series[seg.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSegmentNotFound, seg.Key())
	}
	cp := make(trend.Series, len(stored))
	copy(cp, stored)
	return cp, nil
}

// Segments lists all segments with stored history.
func (s *MemoryStore) Segments(ctx context.Context) []Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Segment, 0, len(s.segments))
	for _, seg := range s.segments {
		out = append(out, seg)
	}
	return out
}

// Count returns the number of tracked segments.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series)
}

func validateOrdering(series trend.Series) error {
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1].Timestamp, series[i].Timestamp
		if cur.Equal(prev) {
			return fmt.Errorf("%w: %s", ErrDuplicateTimestamp, cur)
		}
		if cur.Before(prev) {
			return fmt.Errorf("%w: %s precedes %s", ErrUnorderedSeries, cur, prev)
		}
	}
	return nil
}
