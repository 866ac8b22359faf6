package playback

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGate(t *testing.T) {
	Convey("Given a 500ms gate", t, func() {
		gate := NewGate(500 * time.Millisecond)

		Convey("Then the first action passes", func() {
			So(gate.TryAcquire(epoch), ShouldBeTrue)

			Convey("And a second one within the window is blocked", func() {
				So(gate.TryAcquire(epoch.Add(499*time.Millisecond)), ShouldBeFalse)
			})

			Convey("And one after the window passes", func() {
				So(gate.TryAcquire(epoch.Add(501*time.Millisecond)), ShouldBeTrue)
				So(gate.TryAcquire(epoch.Add(600*time.Millisecond)), ShouldBeFalse)
			})

			Convey("And a reset opens it again", func() {
				gate.Reset()
				So(gate.TryAcquire(epoch.Add(time.Millisecond)), ShouldBeTrue)
			})
		})
	})

	Convey("Elapsed", t, func() {
		So(elapsed(time.Time{}, epoch, SaveInterval), ShouldBeTrue)
		So(elapsed(epoch, epoch.Add(SaveInterval), SaveInterval), ShouldBeFalse)
		So(elapsed(epoch, epoch.Add(SaveInterval+time.Millisecond), SaveInterval), ShouldBeTrue)
	})
}

func TestMockClock(t *testing.T) {
	Convey("Given a mock clock", t, func() {
		clock := NewMockClock(epoch)
		var fired []string

		clock.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
		clock.AfterFunc(time.Second, func() { fired = append(fired, "a") })
		stopped := clock.AfterFunc(time.Second, func() { fired = append(fired, "stopped") })

		So(stopped.Stop(), ShouldBeTrue)
		So(stopped.Stop(), ShouldBeFalse)
		So(clock.Pending(), ShouldEqual, 2)

		Convey("When advanced past some timers", func() {
			clock.Advance(1500 * time.Millisecond)

			Convey("Then only those fire", func() {
				So(fired, ShouldResemble, []string{"a"})
				So(clock.Now(), ShouldEqual, epoch.Add(1500*time.Millisecond))
				So(clock.Pending(), ShouldEqual, 1)
			})

			Convey("Then advancing further fires the rest in order", func() {
				clock.Advance(time.Second)
				So(fired, ShouldResemble, []string{"a", "b"})
				So(clock.Pending(), ShouldEqual, 0)
			})
		})
	})
}
