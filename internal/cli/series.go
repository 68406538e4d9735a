package cli

import (
	"fmt"
	"time"

	"github.com/Mackliffe/rent2own-engine/internal/domain/trend"
)

type trendSeries = trend.Series

// timestampLayouts are accepted in series files, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
}

func buildSeries(parsed seriesFile) (trendSeries, error) {
	series := make(trend.Series, 0, len(parsed.Points))
	for i, p := range parsed.Points {
		ts, err := parseTimestamp(p.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		series = append(series, trend.Point{Timestamp: ts, Price: p.Price})
	}
	return series, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
