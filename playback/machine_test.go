package playback

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMachine(t *testing.T) {
	Convey("Given a new machine", t, func() {
		m := NewMachine()
		var seen []string
		m.On(EventPause, func(ev Event, from State) {
			seen = append(seen, "pause from "+from.String())
		})
		m.On(EventEnded, func(ev Event, from State) {
			seen = append(seen, "ended")
		})

		So(m.State(), ShouldEqual, StateUninitialized)

		Convey("Then events before metadata are ignored", func() {
			So(m.Fire(Event{Type: EventTimeUpdate}), ShouldBeFalse)
			So(m.Fire(Event{Type: EventPause}), ShouldBeFalse)
			So(m.State(), ShouldEqual, StateUninitialized)
			So(seen, ShouldBeEmpty)
		})

		Convey("Then an early play is accepted without leaving uninitialized", func() {
			played := 0
			m.On(EventPlay, func(ev Event, from State) {
				played++
				So(from, ShouldEqual, StateUninitialized)
			})

			So(m.Fire(Event{Type: EventPlay}), ShouldBeTrue)
			So(m.State(), ShouldEqual, StateUninitialized)
			So(played, ShouldEqual, 1)

			So(m.Fire(Event{Type: EventLoadedMetadata}), ShouldBeTrue)
			So(m.State(), ShouldEqual, StateReady)
		})

		Convey("When metadata arrives", func() {
			So(m.Fire(Event{Type: EventLoadedMetadata}), ShouldBeTrue)
			So(m.State(), ShouldEqual, StateReady)

			Convey("Then playback moves between playing and paused", func() {
				So(m.Fire(Event{Type: EventTimeUpdate}), ShouldBeTrue)
				So(m.State(), ShouldEqual, StatePlaying)
				So(m.Fire(Event{Type: EventPause}), ShouldBeTrue)
				So(m.State(), ShouldEqual, StatePaused)
				So(m.Fire(Event{Type: EventPause}), ShouldBeFalse)
				So(m.Fire(Event{Type: EventPlay}), ShouldBeTrue)
				So(m.State(), ShouldEqual, StatePlaying)
				So(seen, ShouldResemble, []string{"pause from playing"})
			})

			Convey("Then the end is terminal for time updates", func() {
				So(m.Fire(Event{Type: EventEnded}), ShouldBeTrue)
				So(m.State(), ShouldEqual, StateEnded)
				So(m.Fire(Event{Type: EventTimeUpdate}), ShouldBeFalse)
				So(m.Fire(Event{Type: EventPause}), ShouldBeFalse)
				So(seen, ShouldResemble, []string{"ended"})
			})

			Convey("Then an error moves to errored until new metadata", func() {
				So(m.Fire(Event{Type: EventError}), ShouldBeTrue)
				So(m.State(), ShouldEqual, StateErrored)
				So(m.Fire(Event{Type: EventPlay}), ShouldBeFalse)
				So(m.Fire(Event{Type: EventLoadedMetadata}), ShouldBeTrue)
				So(m.State(), ShouldEqual, StateReady)
			})

			Convey("Then teardown returns to uninitialized", func() {
				m.Teardown()
				So(m.State(), ShouldEqual, StateUninitialized)
			})
		})
	})
}
