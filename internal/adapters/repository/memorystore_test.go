package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/Mackliffe/rent2own-engine/internal/adapters/repository"
	trend "github.com/Mackliffe/rent2own-engine/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

func point(year, month int, price float64) trend.Point {
	return trend.Point{
		Timestamp: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Price:     price,
	}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty in-memory segment store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		seg := repository.Segment{City: "Nairobi", PropertyType: "apartment"}

		Convey("When putting an ordered series", func() {
			series := trend.Series{point(2024, 1, 100), point(2024, 2, 110), point(2024, 3, 120)}
			So(store.Put(ctx, seg, series), ShouldBeNil)

			Convey("Then it can be read back", func() {
				got, err := store.Series(ctx, seg)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, series)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("And lookup is case-insensitive on the segment", func() {
				got, err := store.Series(ctx, repository.Segment{City: "nairobi", PropertyType: "Apartment"})
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 3)
			})

			Convey("And mutating the returned copy leaves the store untouched", func() {
				got, err := store.Series(ctx, seg)
				So(err, ShouldBeNil)
				got[0].Price = 0

				again, err := store.Series(ctx, seg)
				So(err, ShouldBeNil)
				So(again[0].Price, ShouldEqual, 100)
			})

			Convey("And appending a later point extends the series", func() {
				So(store.Append(ctx, seg, point(2024, 4, 130)), ShouldBeNil)
				got, err := store.Series(ctx, seg)
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 4)
			})

			Convey("And appending a duplicate timestamp is rejected", func() {
				err := store.Append(ctx, seg, point(2024, 3, 999))
				So(errors.Is(err, repository.ErrDuplicateTimestamp), ShouldBeTrue)
			})

			Convey("And appending an earlier point is rejected", func() {
				err := store.Append(ctx, seg, point(2023, 12, 90))
				So(errors.Is(err, repository.ErrUnorderedSeries), ShouldBeTrue)
			})
		})

		Convey("When putting an unordered series it is rejected", func() {
			err := store.Put(ctx, seg, trend.Series{point(2024, 2, 110), point(2024, 1, 100)})
			So(errors.Is(err, repository.ErrUnorderedSeries), ShouldBeTrue)
		})

		Convey("When reading an unknown segment it reports ErrSegmentNotFound", func() {
			_, err := store.Series(ctx, repository.Segment{City: "Kisumu", PropertyType: "villa"})
			So(errors.Is(err, repository.ErrSegmentNotFound), ShouldBeTrue)
		})

		Convey("When appending to a fresh segment it is created", func() {
			other := repository.Segment{City: "Mombasa", PropertyType: "house"}
			So(store.Append(ctx, other, point(2024, 1, 200)), ShouldBeNil)
			So(store.Count(ctx), ShouldEqual, 1)
			So(store.Segments(ctx), ShouldHaveLength, 1)
		})
	})
}
