package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const profilePayload = `{
	"id": 3,
	"name": "Ada",
	"profile_picture": null,
	"is_kid": false,
	"preferred_language": "en",
	"video_progress": [
		{
			"id": 7,
			"title": "Ocean",
			"thumbnail_url": "http://localhost/thumb.jpg",
			"current_time": 42.5,
			"progress_percentage": 35.4,
			"duration": 120,
			"status": "watching",
			"is_completed": false,
			"is_started": true,
			"completion_count": 0,
			"total_watch_time": 60,
			"first_watched_at": "2024-03-01T10:00:00Z",
			"last_watched_at": "2024-03-02T10:00:00Z",
			"last_completed_at": null
		}
	],
	"watch_stats": {"total_videos_started": 1, "total_videos_completed": 0, "total_watch_time": 60}
}`

func TestVideo(t *testing.T) {
	Convey("Given a video DTO", t, func() {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		dto := VideoDTO{
			ID:                 1,
			Title:              "Ocean",
			Description:        "Waves",
			Genres:             []string{"Nature", "Documentary"},
			Language:           "en",
			AvailableLanguages: []string{"en", "de"},
			Duration:           120,
			ThumbnailURL:       "http://localhost/t.jpg",
			PreviewURL:         "http://localhost/p.mp4",
			StreamURL:          "http://localhost/master.m3u8",
			IsReady:            true,
			CreatedAt:          created,
			UpdatedAt:          created.Add(time.Hour),
		}

		Convey("When it is converted to a video and back", func() {
			video := VideoFromAPI(dto)

			Convey("Then the DTO is reproduced", func() {
				So(video.ToAPIFormat(), ShouldResemble, dto)
				So(video.StreamURL(), ShouldEqual, dto.StreamURL)
				So(video.IsReady(), ShouldBeTrue)
			})
		})

		Convey("When the source slices are changed afterwards", func() {
			video := VideoFromAPI(dto)
			dto.Genres[0] = "Horror"

			Convey("Then the video is unaffected", func() {
				So(video.Genres()[0], ShouldEqual, "Nature")
				So(video.HasGenre(" nature "), ShouldBeTrue)
				So(video.HasGenre("horror"), ShouldBeFalse)
			})
		})

		Convey("When the returned slices are changed", func() {
			video := VideoFromAPI(dto)
			video.AvailableLanguages()[0] = "fr"

			Convey("Then the video is unaffected", func() {
				So(video.AvailableLanguages()[0], ShouldEqual, "en")
			})
		})
	})
}

func TestProfile(t *testing.T) {
	Convey("Given a profile payload", t, func() {
		var dto ProfileDTO
		So(json.Unmarshal([]byte(profilePayload), &dto), ShouldBeNil)

		profile := ProfileFromAPI(dto)

		Convey("Then it is mapped to a profile", func() {
			So(profile.ID, ShouldEqual, 3)
			So(profile.Picture.IsAbsent(), ShouldBeTrue)
			So(profile.WatchStats.VideosStarted, ShouldEqual, 1)
			So(len(profile.VideoProgress), ShouldEqual, 1)

			progress := profile.VideoProgress[0]
			So(progress.CurrentTime, ShouldEqual, 42.5)
			So(progress.FirstWatchedAt.IsPresent(), ShouldBeTrue)
			So(progress.LastCompletedAt.IsAbsent(), ShouldBeTrue)
		})

		Convey("Then converting it back reproduces the DTO", func() {
			So(profile.ToAPIFormat(), ShouldResemble, dto)
		})

		Convey("When looking up progress", func() {
			Convey("Then a known video is found", func() {
				found, ok := profile.ProgressFor(7).Get()
				So(ok, ShouldBeTrue)
				So(found.Title, ShouldEqual, "Ocean")
			})

			Convey("Then an unknown video is absent", func() {
				So(profile.ProgressFor(8).IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("Then the started video is listed for continuation", func() {
			So(len(profile.ContinueWatching()), ShouldEqual, 1)
		})
	})

	Convey("Given a profile without progress", t, func() {
		dto := ProfileDTO{ID: 1, Name: "Kid", IsKid: true, ProfilePicture: lo.ToPtr("kid.png")}
		profile := ProfileFromAPI(dto)

		Convey("Then nil slices survive the round trip", func() {
			So(profile.VideoProgress, ShouldBeNil)
			So(profile.ToAPIFormat(), ShouldResemble, dto)
		})

		Convey("Then the picture is present", func() {
			So(profile.Picture.MustGet(), ShouldEqual, "kid.png")
			So(profile.String(), ShouldEqual, "Kid (kids)")
		})
	})
}

func TestUser(t *testing.T) {
	Convey("Given a user", t, func() {
		dto := UserDTO{ID: 1, Email: "ada@example.com"}
		user := UserFromAPI(dto)

		So(user.ToAPIFormat(), ShouldResemble, dto)
		So(user.DisplayName(), ShouldEqual, "ada@example.com")

		user.Username = "ada"
		So(user.DisplayName(), ShouldEqual, "ada")
	})
}
