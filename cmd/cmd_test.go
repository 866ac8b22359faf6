package cmd

import (
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/videoflix/videoflix/filesystem"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/session"
	"github.com/videoflix/videoflix/storage"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Given a mistyped config key", t, func() {
		err := errUnknownKey("api.timout")

		Convey("The closest known key is suggested", func() {
			So(err.Error(), ShouldContainSubstring, "api.timeout")
		})
	})
}

func TestConfigCompletion(t *testing.T) {
	Convey("Given config set completion", t, func() {
		Convey("The first argument completes sorted keys", func() {
			keys, _ := completeKeyThenValue(nil, nil, "")
			So(keys, ShouldContain, key.PlayerVolume)
			So(sort.StringsAreSorted(keys), ShouldBeTrue)
		})

		Convey("The second argument completes the key's values", func() {
			values, _ := completeKeyThenValue(nil, []string{key.IconsVariant}, "")
			So(values, ShouldContain, "emoji")

			values, _ = completeKeyThenValue(nil, []string{"nope"}, "")
			So(values, ShouldBeEmpty)
		})
	})
}

func TestProgressLabel(t *testing.T) {
	Convey("progressLabel", t, func() {
		So(progressLabel(model.VideoProgress{Completed: true, ProgressPercentage: 100}), ShouldEqual, "watched")
		So(progressLabel(model.VideoProgress{ProgressPercentage: 42.4}), ShouldEqual, "42%")
	})
}

func TestSavedPosition(t *testing.T) {
	Convey("Given a session with a profile", t, func() {
		sess := session.New(storage.New("/session.json", storage.SessionLifetime))
		So(sess.SetCurrentProfile(model.ProfileFromAPI(model.ProfileDTO{
			ID:   3,
			Name: "Ada",
			VideoProgress: []model.VideoProgressDTO{
				{ID: 7, CurrentTime: 61, Status: model.StatusWatching},
			},
		})), ShouldBeNil)

		Convey("The profile progress wins for that profile", func() {
			pos, ok := savedPosition(sess, 3, 7).Get()
			So(ok, ShouldBeTrue)
			So(pos, ShouldEqual, 61)
		})

		Convey("Without a profile the local fallback is read", func() {
			So(storage.Local().Set(storage.ResumeKey(8), "12.5"), ShouldBeNil)

			pos, ok := savedPosition(sess, 0, 8).Get()
			So(ok, ShouldBeTrue)
			So(pos, ShouldEqual, 12.5)

			So(savedPosition(sess, 0, 9).IsAbsent(), ShouldBeTrue)
		})
	})
}
