package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then recording functions never panic", func() {
			So(func() {
				RecordScheduleComputed()
				RecordAffordabilityEvaluation("qualifies")
				RecordTrendSummary()
				RecordRiskAssessment("low")
				RecordRankRequest()
				RecordCandidateEvaluated()
				RecordCandidateSkipped()
				ObserveRankDuration(0.05)
				RecordCacheHit()
				RecordCacheMiss()
				UpdateSegmentsTracked(3)
			}, ShouldNotPanic)
		})

		Convey("And the registry is gatherable", func() {
			families, err := Registry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
		})
	})
}
