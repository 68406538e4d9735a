package repository

import "errors"

// Sentinel kinds for segment store errors.
var (
	ErrSegmentNotFound    = errors.New("segment not found")
	ErrUnorderedSeries    = errors.New("price series must be chronologically ordered")
	ErrDuplicateTimestamp = errors.New("duplicate timestamp in price series")
)
