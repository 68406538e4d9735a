// Package repository stores historical price series per market segment and
// hands them to the trend aggregator.
package repository

import (
	"context"
	"strings"

	"github.com/Mackliffe/rent2own-engine/internal/domain/trend"
)

// Segment identifies one city/property-type price history.
type Segment struct {
	City         string
	PropertyType string
}

// Key returns the canonical lookup key for the segment. Matching is
// case-insensitive.
func (s Segment) Key() string {
	return strings.ToLower(s.City) + "/" + strings.ToLower(s.PropertyType)
}

// Store provides read/write access to segment price histories.
type Store interface {
	// Put replaces the series for a segment. The series must be
	// chronologically ordered with unique timestamps.
	Put(ctx context.Context, seg Segment, series trend.Series) error

	// Append adds one observation to a segment, creating it if absent.
	// The point must be strictly later than the last stored one.
	Append(ctx context.Context, seg Segment, p trend.Point) error

	// Series returns a copy of the stored series for a segment.
	// Returns ErrSegmentNotFound if the segment is unknown.
	Series(ctx context.Context, seg Segment) (trend.Series, error)

	// Segments lists all segments with stored history.
	Segments(ctx context.Context) []Segment

	// Count returns the number of tracked segments.
	Count(ctx context.Context) int
}
