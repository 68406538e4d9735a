package config_test

import (
	"runtime"
	"testing"

	"github.com/Mackliffe/rent2own-engine/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry the documented policy defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.QueueSize, convey.ShouldEqual, 4096)
			convey.So(cfg.QualifyThreshold, convey.ShouldEqual, 0.36)
			convey.So(cfg.ConditionalThreshold, convey.ShouldEqual, 0.45)
			convey.So(cfg.RiskAffordabilityWeight, convey.ShouldEqual, 40)
			convey.So(cfg.RiskCreditWeight, convey.ShouldEqual, 35)
			convey.So(cfg.RiskMarketWeight, convey.ShouldEqual, 25)
			convey.So(cfg.TierLowCutoff, convey.ShouldEqual, 75)
			convey.So(cfg.TierModerateCutoff, convey.ShouldEqual, 50)
			convey.So(cfg.TierHighCutoff, convey.ShouldEqual, 25)
			convey.So(cfg.CreditScaleMax, convey.ShouldEqual, 100)
			convey.So(cfg.FlatTolerance, convey.ShouldEqual, 0.001)
			convey.So(cfg.RankAffordabilityWeight, convey.ShouldEqual, 50)
			convey.So(cfg.RankRiskWeight, convey.ShouldEqual, 30)
			convey.So(cfg.RankTrendWeight, convey.ShouldEqual, 20)
			convey.So(cfg.DefaultDownPaymentRatio, convey.ShouldEqual, 0.10)
			convey.So(cfg.DefaultTermMonths, convey.ShouldEqual, 120)
			convey.So(cfg.DefaultAnnualRatePercent, convey.ShouldEqual, 12)
			convey.So(cfg.RedisAddr, convey.ShouldBeEmpty)
		})
	})
}
