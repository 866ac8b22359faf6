package tui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/filesystem"
	"github.com/videoflix/videoflix/internal/ui"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/playback"
	"github.com/videoflix/videoflix/session"
	"github.com/videoflix/videoflix/storage"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeService struct {
	profiles []model.ProfileDTO
	videos   []model.VideoDTO
}

func (f *fakeService) Profiles(context.Context) (api.Response[[]model.ProfileDTO], error) {
	return api.Response[[]model.ProfileDTO]{OK: true, Status: 200, Data: f.profiles}, nil
}

func (f *fakeService) Videos(context.Context) (api.Response[[]model.VideoDTO], error) {
	return api.Response[[]model.VideoDTO]{OK: true, Status: 200, Data: f.videos}, nil
}

func (f *fakeService) UpdateVideoProgress(_ context.Context, profileID, _ int, _ float64) (api.Response[model.ProfileDTO], error) {
	return api.Response[model.ProfileDTO]{OK: true, Status: 200, Data: model.ProfileDTO{ID: profileID, Name: "Ada"}}, nil
}

type fakeBackend struct {
	mu      sync.Mutex
	paused  bool
	current float64
	muted   bool
	rate    float64
	seeks   []float64
	events  chan playback.Event
	once    sync.Once
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{paused: true, rate: 1, events: make(chan playback.Event, 8)}
}

func (f *fakeBackend) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = false
	return nil
}

func (f *fakeBackend) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = true
	return nil
}

func (f *fakeBackend) Paused() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused, nil
}

func (f *fakeBackend) CurrentTime() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeBackend) Seek(t float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = t
	f.seeks = append(f.seeks, t)
	return nil
}

func (f *fakeBackend) Duration() (float64, error)  { return 100, nil }
func (f *fakeBackend) Volume() (float64, error)    { return playback.DefaultVolume, nil }
func (f *fakeBackend) SetVolume(float64) error     { return nil }
func (f *fakeBackend) PlaybackRate() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rate, nil
}

func (f *fakeBackend) Muted() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted, nil
}

func (f *fakeBackend) SetMuted(m bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = m
	return nil
}

func (f *fakeBackend) SetPlaybackRate(r float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = r
	return nil
}

func (f *fakeBackend) Events() <-chan playback.Event { return f.events }
func (f *fakeBackend) Err() playback.MediaError      { return playback.MediaError{} }

func (f *fakeBackend) Close() error {
	f.once.Do(func() { close(f.events) })
	return nil
}

func (f *fakeBackend) isPaused() bool {
	p, _ := f.Paused()
	return p
}

func (f *fakeBackend) seekCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seeks)
}

func (f *fakeBackend) lastSeek() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.seeks) == 0 {
		return -1
	}
	return f.seeks[len(f.seeks)-1]
}

// run executes cmd and returns the messages that arrive promptly. Timers are left behind.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var msgs []tea.Msg
			for _, c := range batch {
				msgs = append(msgs, run(c)...)
			}
			return msgs
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// feed sends every message produced by cmd back into the bubble, skipping timer ticks.
func feed(b *statefulBubble, cmd tea.Cmd) {
	for _, msg := range run(cmd) {
		switch msg.(type) {
		case spinner.TickMsg, tickMsg:
			continue
		}
		_, next := b.Update(msg)
		feed(b, next)
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(b *statefulBubble, keys ...string) {
	for _, k := range keys {
		_, cmd := b.Update(keyPress(k))
		feed(b, cmd)
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func newTestBubble(t *testing.T) (*statefulBubble, *fakeBackend) {
	svc := &fakeService{
		profiles: []model.ProfileDTO{
			{ID: 1, Name: "Ada"},
			{ID: 2, Name: "Tim", IsKid: true},
		},
		videos: []model.VideoDTO{
			{ID: 10, Title: "Mountain Morning", Duration: 100, StreamURL: "https://cdn.example.com/10/master.m3u8", IsReady: true},
			{ID: 11, Title: "Ocean Depths", Duration: 100, StreamURL: "https://cdn.example.com/11/master.m3u8", IsReady: true},
			{ID: 12, Title: "Ocean Rough Cut", IsReady: false},
		},
	}

	dir := t.TempDir()
	sess := session.New(storage.New(filepath.Join(dir, "session.json"), storage.SessionLifetime))

	b := newBubble(&Options{}, svc, sess, &ui.Notifier{})
	b.local = storage.New(filepath.Join(dir, "local.json"), 0)
	b.resize(84, 30)

	backend := newFakeBackend()
	b.factory = playback.FactoryFunc(func(context.Context, playback.Source, playback.Options) (playback.Backend, error) {
		return backend, nil
	})

	feed(b, b.Init())
	return b, backend
}

func TestNavigation(t *testing.T) {
	Convey("Given a started TUI", t, func() {
		b, _ := newTestBubble(t)

		Convey("The profiles are listed first", func() {
			So(b.state, ShouldEqual, profilesState)
			So(b.profilesC.Items(), ShouldHaveLength, 2)
		})

		Convey("When a profile is picked", func() {
			press(b, "enter")

			Convey("Then the videos of the catalog are shown", func() {
				So(b.state, ShouldEqual, videosState)
				So(b.videosC.Items(), ShouldHaveLength, 3)
				So(b.profileID(), ShouldEqual, 1)
				So(b.session.CurrentProfile().MustGet().Name, ShouldEqual, "Ada")
			})

			Convey("Then searching narrows the list and back clears it", func() {
				press(b, "/", "ocean", "enter")
				So(b.state, ShouldEqual, videosState)
				So(b.query, ShouldEqual, "ocean")
				So(b.videosC.Items(), ShouldHaveLength, 2)

				press(b, "esc")
				So(b.query, ShouldBeEmpty)
				So(b.videosC.Items(), ShouldHaveLength, 3)

				press(b, "esc")
				So(b.state, ShouldEqual, profilesState)
			})

			Convey("Then a video opens its details", func() {
				press(b, "enter")
				So(b.state, ShouldEqual, detailState)
				So(b.selectedVideo.MustGet().ID(), ShouldEqual, 10)
				So(b.View(), ShouldContainSubstring, "Mountain Morning")

				press(b, "esc")
				So(b.state, ShouldEqual, videosState)
			})
		})

		Convey("A video still processing is not played", func() {
			press(b, "enter", "/", "rough", "enter", "enter", "enter")
			So(b.state, ShouldEqual, detailState)
			So(b.player, ShouldBeNil)
			So(b.notifier.Current(), ShouldContainSubstring, "processed")
		})
	})
}

func TestPlayerScreen(t *testing.T) {
	Convey("Given a playing video", t, func() {
		b, backend := newTestBubble(t)
		press(b, "enter", "enter", "enter")

		So(b.state, ShouldEqual, playerState)
		o := b.player
		So(o, ShouldNotBeNil)

		backend.events <- playback.Event{Type: playback.EventLoadedMetadata, Duration: 100}
		// the first load jumps to the start
		So(waitFor(func() bool { return backend.seekCount() == 1 }), ShouldBeTrue)
		So(o.Store().VideoDuration(), ShouldEqual, 100)

		Convey("Keys drive the player", func() {
			press(b, " ")
			So(backend.isPaused(), ShouldBeFalse)

			press(b, "right")
			So(waitFor(func() bool { return backend.lastSeek() == 10 }), ShouldBeTrue)

			press(b, "m")
			So(o.Store().IsMuted(), ShouldBeTrue)

			press(b, "up")
			So(o.Store().Volume(), ShouldAlmostEqual, 0.55)
			So(o.Store().IsMuted(), ShouldBeFalse)

			press(b, "s", "4")
			So(o.Store().PlaybackRate(), ShouldEqual, 1.5)
			So(o.Store().ShowSpeedMenu(), ShouldBeFalse)
		})

		Convey("Dragging on the seek bar scrubs", func() {
			track := b.seekTrack()
			x := int(track.Left + track.Width/2)
			y := int(track.Top)

			_, cmd := b.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			feed(b, cmd)
			So(o.Store().IsScrubbing(), ShouldBeTrue)
			So(backend.isPaused(), ShouldBeTrue)
			So(backend.lastSeek(), ShouldEqual, 50)

			_, cmd = b.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
			feed(b, cmd)
			So(o.Store().IsScrubbing(), ShouldBeFalse)
			So(backend.isPaused(), ShouldBeFalse)
		})

		Convey("The view shows the position", func() {
			So(b.View(), ShouldContainSubstring, "Mountain Morning")
			So(b.View(), ShouldContainSubstring, "1:40")
		})

		Convey("Leaving closes the player and returns to the details", func() {
			press(b, "esc")
			<-o.Done()

			_, cmd := b.Update(playerClosedMsg{player: o})
			feed(b, cmd)
			So(b.player, ShouldBeNil)
			So(b.state, ShouldEqual, detailState)
		})

		b.teardownPlayer()
	})
}

func TestJumpBeforeReady(t *testing.T) {
	Convey("Given a player that has not opened yet", t, func() {
		b, backend := newTestBubble(t)
		o := b.newPlayer()

		Convey("A jump is reported to the user instead of seeking", func() {
			So(func() { b.jump(o, jumpStep, false) }, ShouldNotPanic)
			So(backend.seekCount(), ShouldEqual, 0)
			So(b.errors.(*ui.Notifier).Pending(), ShouldContain, "Player is not ready for seeking")
		})
	})
}
