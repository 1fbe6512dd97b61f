package config_test

import (
	"testing"

	"github.com/okian/mergington/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.SeedFile, convey.ShouldBeEmpty)
			convey.So(cfg.EnforceCapacity, convey.ShouldBeFalse)
			convey.So(cfg.MetricsRefreshMS, convey.ShouldEqual, 5_000)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "mergington")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "activities")
			convey.So(cfg.MetricsBuckets, convey.ShouldBeEmpty)
		})

		convey.Convey("And the defaults should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
