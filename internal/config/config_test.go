package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/tunify/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.CatalogueSource, convey.ShouldEqual, config.SourceCSV)
			convey.So(cfg.CatalogueTable, convey.ShouldEqual, "tracks")
			convey.So(cfg.DefaultRecommendN, convey.ShouldEqual, 5)
			convey.So(cfg.MaxRecommendN, convey.ShouldEqual, 50)
			convey.So(cfg.DefaultPlaylistLimit, convey.ShouldEqual, 10)
			convey.So(cfg.EnrichWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.HasSpotifyCredentials(), convey.ShouldBeFalse)
		})

		convey.Convey("And the defaults should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
