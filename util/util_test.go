package util

import (
	"math"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/videoflix/videoflix/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(1.5, 0, 1), ShouldEqual, 1)
		So(Clamp(-0.2, 0, 1), ShouldEqual, 0)
		So(Clamp(0.25, 0, 1), ShouldEqual, 0.25)
		So(Clamp(7, 0, 10), ShouldEqual, 7)

		Convey("An inverted range collapses to the lower bound", func() {
			So(Clamp(5.0, 0, -1), ShouldEqual, 0)
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(4, "video", "videos"), ShouldEqual, "4 videos")
	})
}

func TestFormatTimestamp(t *testing.T) {
	Convey("FormatTimestamp", t, func() {
		So(FormatTimestamp(0), ShouldEqual, "0:00")
		So(FormatTimestamp(65.9), ShouldEqual, "1:05")
		So(FormatTimestamp(3725), ShouldEqual, "1:02:05")
		So(FormatTimestamp(-3), ShouldEqual, "0:00")
		So(FormatTimestamp(math.NaN()), ShouldEqual, "0:00")
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/videoflix/sockets", 0755), ShouldBeNil)
		So(fs.WriteFile("/tmp/videoflix/sockets/a.sock", []byte{}, 0644), ShouldBeNil)

		So(Delete("/tmp/videoflix"), ShouldBeNil)
		So(lo.Must(fs.Exists("/tmp/videoflix")), ShouldBeFalse)

		Convey("A missing path is an error", func() {
			So(Delete("/does/not/exist"), ShouldNotBeNil)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[string]
		s.Push("profiles")
		s.Push("videos")
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, "videos")
		So(s.Pop(), ShouldEqual, "videos")
		So(s.Pop(), ShouldEqual, "profiles")
		So(s.Pop(), ShouldEqual, "")
	})
}
