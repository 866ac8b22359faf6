package playback

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSeekBy(t *testing.T) {
	Convey("Given a 100s video at 50s", t, func() {
		backend := newFakeBackend(100)
		backend.setCurrent(50)
		store := readyStore(backend, 100)
		seeker := NewSeeker(store, NewMockClock(epoch), nil)

		Convey("Then any delta stays within [0, duration-1]", func() {
			for _, d := range []float64{-1000, -51, -50, -1, 0, 1, 48, 49, 50, 1000} {
				backend.setCurrent(50)
				seeker.SeekBy(d)
				So(store.ProgressTime(), ShouldBeBetweenOrEqual, 0, 99)
				So(backend.lastSeek(), ShouldBeBetweenOrEqual, 0, 99)
			}
		})

		Convey("Then a forward step lands on the sum", func() {
			seeker.SeekBy(10)
			So(store.ProgressTime(), ShouldEqual, 60)
		})

		Convey("Then keyboard seeks default to 10 seconds", func() {
			seeker.HandleKeyboardSeek(Backward, 0)
			So(store.ProgressTime(), ShouldEqual, 40)
			seeker.HandleKeyboardSeek(Forward, 5)
			So(store.ProgressTime(), ShouldEqual, 45)
		})
	})

	Convey("Given a store that cannot seek", t, func() {
		backend := newFakeBackend(0)
		store := readyStore(backend, 0)
		seeker := NewSeeker(store, NewMockClock(epoch), nil)

		Convey("Then seeks are silent no-ops", func() {
			seeker.SeekBy(10)
			seeker.SeekTo(10)
			seeker.ProgressClick(Pointer{X: 5}, Rect{Width: 10})
			So(backend.seekCount(), ShouldEqual, 0)
		})
	})

	Convey("Given a store without a backend", t, func() {
		store := NewStore()
		store.SetVideoDuration(100)
		seeker := NewSeeker(store, NewMockClock(epoch), nil)

		Convey("Then seeking does nothing", func() {
			seeker.SeekBy(10)
			seeker.ScrubStart()
			So(store.ProgressTime(), ShouldEqual, 0)
			So(store.IsScrubbing(), ShouldBeFalse)
		})
	})
}

func TestSeekTo(t *testing.T) {
	Convey("Given a 100s video", t, func() {
		backend := newFakeBackend(100)
		store := readyStore(backend, 100)
		seeker := NewSeeker(store, NewMockClock(epoch), nil)

		Convey("Then seeking to percentage 0.5 lands on 50", func() {
			seeker.SeekToPercentage(0.5)
			So(store.ProgressTime(), ShouldEqual, 50)
			So(backend.lastSeek(), ShouldEqual, 50)
		})

		Convey("Then targets are clamped to [0, duration]", func() {
			seeker.SeekTo(500)
			So(store.ProgressTime(), ShouldEqual, 100)
			seeker.SeekTo(-5)
			So(store.ProgressTime(), ShouldEqual, 0)
			seeker.SeekToPercentage(1.5)
			So(store.ProgressTime(), ShouldEqual, 100)
		})

		Convey("Then a click on the track seeks once without scrubbing", func() {
			seeker.ProgressClick(Pointer{X: 30}, Rect{Left: 10, Width: 80})
			So(store.ProgressTime(), ShouldEqual, 25)
			So(store.IsScrubbing(), ShouldBeFalse)
			So(backend.seekCount(), ShouldEqual, 1)
		})
	})
}

func TestScrubbing(t *testing.T) {
	Convey("Given a playing 200s video", t, func() {
		backend := newFakeBackend(200)
		store := readyStore(backend, 200)
		store.SetPlaying(true)
		notifier := &recordingNotifier{}
		seeker := NewSeeker(store, NewMockClock(epoch), notifier)
		track := Rect{Left: 100, Width: 200}

		Convey("When scrubbing starts", func() {
			seeker.ScrubStart()

			Convey("Then the backend is paused and the flag is set", func() {
				So(store.IsScrubbing(), ShouldBeTrue)
				So(backend.pauses, ShouldEqual, 1)
			})

			Convey("Then dragging updates the position live without playing", func() {
				seeker.Scrubbing(Pointer{X: 150}, track)
				So(store.ProgressTime(), ShouldEqual, 50)
				So(store.Snapshot().ShowSeekTooltip, ShouldBeTrue)
				So(store.Snapshot().SeekTooltipPosition, ShouldEqual, 50)

				seeker.ScrubbingTouch(Touch{Points: []Pointer{{X: 400}}}, track)
				So(store.ProgressTime(), ShouldEqual, 200)
				So(backend.plays, ShouldEqual, 0)
			})

			Convey("Then releasing seeks and plays", func() {
				seeker.ScrubEnd(Pointer{X: 200}, track)
				So(store.IsScrubbing(), ShouldBeFalse)
				So(store.ProgressTime(), ShouldEqual, 100)
				So(store.Snapshot().ShowSeekTooltip, ShouldBeFalse)
				So(backend.plays, ShouldEqual, 1)
			})

			Convey("Then a touch end without points keeps the current position", func() {
				seeker.Scrubbing(Pointer{X: 150}, track)
				seeker.ScrubEndTouch(Touch{}, track)
				So(store.ProgressTime(), ShouldEqual, 50)
				So(backend.plays, ShouldEqual, 1)
			})

			Convey("Then a failing resume is surfaced, not returned", func() {
				backend.playErr = errBoom
				seeker.ScrubEnd(Pointer{X: 200}, track)
				So(notifier.all(), ShouldResemble, []string{resumeFailedMessage})
			})
		})

		Convey("Then dragging without a scrub start does nothing", func() {
			seeker.Scrubbing(Pointer{X: 150}, track)
			seeker.ScrubEnd(Pointer{X: 150}, track)
			So(backend.seekCount(), ShouldEqual, 0)
		})
	})
}

func TestJumpTime(t *testing.T) {
	Convey("Given a ready 100s video at 20s", t, func() {
		backend := newFakeBackend(100)
		store := readyStore(backend, 100)
		store.SetProgressTime(20)
		clock := NewMockClock(epoch)
		notifier := &recordingNotifier{}
		seeker := NewSeeker(store, clock, notifier)

		Convey("When jumping twice within 500ms", func() {
			So(seeker.JumpTime(30, true), ShouldBeNil)
			clock.Advance(499 * time.Millisecond)
			So(seeker.JumpTime(40, true), ShouldBeNil)

			Convey("Then only one seek happens", func() {
				So(backend.seekCount(), ShouldEqual, 1)
				So(backend.lastSeek(), ShouldEqual, 30)
				So(store.LastSeekTime(), ShouldEqual, epoch)
			})

			Convey("Then a jump after 501ms seeks again", func() {
				clock.Advance(2 * time.Millisecond)
				So(seeker.JumpTime(40, true), ShouldBeNil)
				So(backend.seekCount(), ShouldEqual, 2)
				So(backend.lastSeek(), ShouldEqual, 40)
			})
		})

		Convey("Then a non-init jump is an offset from the current position", func() {
			So(seeker.JumpTime(15, false), ShouldBeNil)
			So(store.ProgressTime(), ShouldEqual, 35)
		})

		Convey("Then an offset past the end is clamped", func() {
			So(seeker.JumpTime(500, false), ShouldBeNil)
			So(store.ProgressTime(), ShouldEqual, 100)
		})

		Convey("Then playback resumes when it was playing", func() {
			store.SetPlaying(true)
			So(seeker.JumpTime(0, true), ShouldBeNil)
			So(backend.plays, ShouldEqual, 1)
		})
	})

	Convey("Given a player whose view is not initialized", t, func() {
		store := NewStore()
		store.Attach(newFakeBackend(100))
		notifier := &recordingNotifier{}
		seeker := NewSeeker(store, NewMockClock(epoch), notifier)

		Convey("Then jumping fails with a surfaced error", func() {
			So(seeker.JumpTime(10, true), ShouldEqual, ErrNotReady)
			So(notifier.all(), ShouldResemble, []string{notReadyMessage})
		})
	})
}

func TestRect(t *testing.T) {
	Convey("Track fractions", t, func() {
		track := Rect{Left: 10, Width: 100}
		So(track.Fraction(60), ShouldEqual, 0.5)
		So(track.Fraction(0), ShouldEqual, 0)
		So(track.Fraction(500), ShouldEqual, 1)
		So(Rect{}.Fraction(5), ShouldEqual, 0)
	})
}
