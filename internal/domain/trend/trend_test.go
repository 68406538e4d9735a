package trend_test

import (
	"errors"
	"testing"
	"time"

	trend "github.com/Mackliffe/rent2own-engine/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

func monthlySeries(prices ...float64) trend.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(trend.Series, len(prices))
	for i, p := range prices {
		series[i] = trend.Point{Timestamp: start.AddDate(0, i, 0), Price: p}
	}
	return series
}

func TestSummarize(t *testing.T) {
	Convey("Given an aggregator with defaults", t, func() {
		aggregator := trend.NewAggregator()

		Convey("When the series is strictly increasing", func() {
			summary, err := aggregator.Summarize(monthlySeries(100, 110, 120, 130, 140))
			So(err, ShouldBeNil)

			Convey("Then the direction is rising", func() {
				So(summary.Direction, ShouldEqual, trend.DirectionRising)
			})

			Convey("And the projection extends the line one period ahead", func() {
				So(summary.ProjectedPrice, ShouldAlmostEqual, 150, 1e-6)
			})
		})

		Convey("When the series is constant", func() {
			summary, err := aggregator.Summarize(monthlySeries(250, 250, 250, 250))
			So(err, ShouldBeNil)

			Convey("Then the direction is flat and volatility is zero", func() {
				So(summary.Direction, ShouldEqual, trend.DirectionFlat)
				So(summary.Volatility, ShouldEqual, 0)
				So(summary.ProjectedPrice, ShouldAlmostEqual, 250, 1e-6)
			})
		})

		Convey("When the series is strictly decreasing", func() {
			summary, err := aggregator.Summarize(monthlySeries(500, 450, 400, 350))
			So(err, ShouldBeNil)
			So(summary.Direction, ShouldEqual, trend.DirectionFalling)
		})

		Convey("When the projection would cross zero it is floored at zero", func() {
			summary, err := aggregator.Summarize(monthlySeries(30, 20, 10))
			So(err, ShouldBeNil)
			So(summary.Direction, ShouldEqual, trend.DirectionFalling)
			So(summary.ProjectedPrice, ShouldEqual, 0)
		})

		Convey("When the series jitters around a level it reads as flat but volatile", func() {
			flat, err := aggregator.Summarize(monthlySeries(200, 210, 195, 205, 200))
			So(err, ShouldBeNil)
			So(flat.Volatility, ShouldBeGreaterThan, 0)

			steady, err := aggregator.Summarize(monthlySeries(200, 201, 202, 203, 204))
			So(err, ShouldBeNil)

			Convey("And jitter carries more volatility than a smooth climb", func() {
				So(flat.Volatility, ShouldBeGreaterThan, steady.Volatility)
			})
		})

		Convey("When the series has fewer than 2 points it reports ErrInsufficientData", func() {
			_, err := aggregator.Summarize(monthlySeries(100))
			So(errors.Is(err, trend.ErrInsufficientData), ShouldBeTrue)

			_, err = aggregator.Summarize(nil)
			So(errors.Is(err, trend.ErrInsufficientData), ShouldBeTrue)
		})
	})

	Convey("Given a wide flat tolerance", t, func() {
		aggregator := trend.NewAggregator(trend.WithFlatTolerance(0.5))

		Convey("Then a gentle climb reads as flat", func() {
			summary, err := aggregator.Summarize(monthlySeries(100, 101, 102, 103))
			So(err, ShouldBeNil)
			So(summary.Direction, ShouldEqual, trend.DirectionFlat)
		})
	})
}
