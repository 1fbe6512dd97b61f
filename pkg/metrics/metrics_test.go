package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given a manager built with custom options", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(
			WithNamespace("school"),
			WithSubsystem("clubs"),
			WithMetricPrefix("test"),
			WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
			WithRefreshInterval(5*time.Second),
			WithCustomLabels(map[string]string{"env": "test"}),
			WithPrometheusRegistry(registry),
		)

		Convey("Then the options should be applied", func() {
			So(manager, ShouldNotBeNil)
			So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
			So(manager.Enabled(), ShouldBeTrue)
		})

		Convey("And metric names should carry namespace, subsystem and prefix", func() {
			manager.signups.WithLabelValues("Chess Club").Inc()
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			found := false
			for _, mf := range families {
				if mf.GetName() == "school_clubs_test_signups_total" {
					found = true
					So(mf.GetMetric()[0].GetLabel(), ShouldNotBeEmpty)
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}

func TestMetricsOptionsValidation(t *testing.T) {
	Convey("Given options with empty or invalid values", t, func() {
		Convey("When they are applied", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(-1*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "mergington")
				So(manager.subsystem, ShouldEqual, "activities")
				So(manager.metricPrefix, ShouldEqual, "")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording a signup", func() {
			before := testutil.ToFloat64(current().signups.WithLabelValues("Basketball"))
			RecordSignup("Basketball")

			Convey("Then the activity counter should increase by one", func() {
				So(testutil.ToFloat64(current().signups.WithLabelValues("Basketball")), ShouldEqual, before+1)
			})
		})

		Convey("When recording an unregistration", func() {
			before := testutil.ToFloat64(current().unregistrations.WithLabelValues("Tennis Club"))
			RecordUnregistration("Tennis Club")

			Convey("Then the activity counter should increase by one", func() {
				So(testutil.ToFloat64(current().unregistrations.WithLabelValues("Tennis Club")), ShouldEqual, before+1)
			})
		})

		Convey("When recording a rejection", func() {
			before := testutil.ToFloat64(current().rejections.WithLabelValues("signup", "already_signed_up"))
			RecordRejection("signup", "already_signed_up")

			Convey("Then the reason counter should increase by one", func() {
				So(testutil.ToFloat64(current().rejections.WithLabelValues("signup", "already_signed_up")), ShouldEqual, before+1)
			})
		})

		Convey("When updating registry gauges", func() {
			UpdateActivityCount(9)
			UpdateParticipantCount(12)
			UpdateActivityParticipants("Art Club", 3)
			UpdateSeedActivitiesLoaded(9)

			Convey("Then the gauges should hold the latest values", func() {
				So(testutil.ToFloat64(current().activitiesTotal), ShouldEqual, 9)
				So(testutil.ToFloat64(current().participantsTotal), ShouldEqual, 12)
				So(testutil.ToFloat64(current().participantsByName.WithLabelValues("Art Club")), ShouldEqual, 3)
				So(testutil.ToFloat64(current().seedActivitiesLoaded), ShouldEqual, 9)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					RecordHTTPRequest("activities", "GET", "200")
					RecordHTTPRequestDuration("activities", "GET", "200", 1.5)
					RecordErrorByType("not_found", "medium")
					RecordErrorByEndpoint("signup", "POST", "not_found")
					RecordErrorLatency("http", "not_found", 0.4)
					RecordRegistryLatency("signup", 0.01)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			RecordSignup("Music Ensemble")
			families, err := GetRegistry().Gather()

			Convey("Then it should expose mergington metrics only", func() {
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				for _, mf := range families {
					So(strings.HasPrefix(mf.GetName(), "mergington_activities_"), ShouldBeTrue)
				}
			})
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled global manager", t, func() {
		prev := current()
		Init(WithMetricsEnabled(false))
		defer global.Store(prev)

		Convey("When recording a signup", func() {
			RecordSignup("Debate Team")

			Convey("Then the counter should stay at zero", func() {
				So(testutil.ToFloat64(current().signups.WithLabelValues("Debate Team")), ShouldEqual, 0)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(current().signups.WithLabelValues("Science Olympiad"))
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordSignup("Science Olympiad")
					RecordHTTPRequest("signup", "POST", "200")
				}
			}()
		}
		wg.Wait()

		Convey("Then every increment should be counted", func() {
			So(testutil.ToFloat64(current().signups.WithLabelValues("Science Olympiad")), ShouldEqual, before+1000)
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given a global manager rebuilt from configuration", t, func() {
		prev := current()
		defer global.Store(prev)

		m := Init(
			WithNamespace("school"),
			WithSubsystem("clubs"),
			WithMetricPrefix("v2"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithCustomLabels(map[string]string{"campus": "north"}),
			WithRefreshInterval(250*time.Millisecond),
		)

		Convey("Then the package accessors should follow it", func() {
			So(current(), ShouldEqual, m)
			So(RefreshInterval(), ShouldEqual, 250*time.Millisecond)
			So(Enabled(), ShouldBeTrue)
		})

		Convey("And recordings should land in the new registry only", func() {
			RecordSignup("Chess Club")
			RecordRegistryLatency("signup", 5)

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := map[string]bool{}
			for _, mf := range families {
				names[mf.GetName()] = true
				for _, metric := range mf.GetMetric() {
					labels := map[string]string{}
					for _, lp := range metric.GetLabel() {
						labels[lp.GetName()] = lp.GetValue()
					}
					So(labels["campus"], ShouldEqual, "north")
				}
			}
			So(names, ShouldContainKey, "school_clubs_v2_signups_total")
			So(names, ShouldContainKey, "school_clubs_v2_registry_operation_latency_milliseconds")

			oldFamilies, err := prev.gatherer.Gather()
			So(err, ShouldBeNil)
			for _, mf := range oldFamilies {
				So(strings.HasPrefix(mf.GetName(), "school_"), ShouldBeFalse)
			}
		})

		Convey("And the configured buckets should be used", func() {
			RecordRegistryLatency("list", 5)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			for _, mf := range families {
				if mf.GetName() == "school_clubs_v2_registry_operation_latency_milliseconds" {
					So(len(mf.GetMetric()[0].GetHistogram().GetBucket()), ShouldEqual, 3)
				}
			}
		})
	})

	Convey("Given a disabled manager built through Init", t, func() {
		prev := current()
		defer global.Store(prev)
		Init(WithMetricsEnabled(false))

		Convey("Then Enabled should report it", func() {
			So(Enabled(), ShouldBeFalse)
		})
	})
}
