package cache_test

import (
	"testing"

	cache "github.com/Mackliffe/rent2own-engine/internal/adapters/cache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemory(t *testing.T) {
	Convey("Given an empty in-memory cache", t, func() {
		c := cache.NewMemory()

		Convey("When a key is missing", func() {
			_, ok := c.Get("nairobi/apartment")
			So(ok, ShouldBeFalse)
		})

		Convey("When a key is set", func() {
			So(c.Set("nairobi/apartment", `{"direction":"rising"}`), ShouldBeNil)

			Convey("Then it can be read back", func() {
				val, ok := c.Get("nairobi/apartment")
				So(ok, ShouldBeTrue)
				So(val, ShouldEqual, `{"direction":"rising"}`)
			})

			Convey("And deleting it makes it miss again", func() {
				So(c.Delete("nairobi/apartment"), ShouldBeNil)
				_, ok := c.Get("nairobi/apartment")
				So(ok, ShouldBeFalse)
			})
		})
	})
}
