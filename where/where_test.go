package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/videoflix/videoflix/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config() creates the directory", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs() lives under the config directory", func() {
			So(filepath.Dir(Logs()), ShouldEqual, Config())
		})

		Convey("Storage files are split between config and cache", func() {
			So(filepath.Dir(LocalStorage()), ShouldEqual, Config())
			So(filepath.Dir(SessionStorage()), ShouldEqual, Cache())
		})

		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, "/custom/videoflix")
			So(Config(), ShouldEqual, "/custom/videoflix")
			So(lo.Must(filesystem.API().IsDir("/custom/videoflix")), ShouldBeTrue)
		})
	})
}
