package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/model"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeBackend struct {
	mu sync.Mutex

	current  float64
	duration float64
	volume   float64
	muted    bool
	paused   bool
	rate     float64
	mediaErr MediaError

	seeks   []float64
	plays   int
	pauses  int
	playErr error
	closed  bool

	events chan Event
}

func newFakeBackend(duration float64) *fakeBackend {
	return &fakeBackend{
		duration: duration,
		volume:   DefaultVolume,
		rate:     1,
		events:   make(chan Event, 16),
	}
}

func (f *fakeBackend) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	if f.playErr != nil {
		return f.playErr
	}
	f.paused = false
	return nil
}

func (f *fakeBackend) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
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
	f.seeks = append(f.seeks, t)
	f.current = t
	return nil
}

func (f *fakeBackend) Duration() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration, nil
}

func (f *fakeBackend) Volume() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume, nil
}

func (f *fakeBackend) SetVolume(v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
	return nil
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

func (f *fakeBackend) PlaybackRate() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rate, nil
}

func (f *fakeBackend) SetPlaybackRate(r float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = r
	return nil
}

func (f *fakeBackend) Events() <-chan Event { return f.events }

func (f *fakeBackend) Err() MediaError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mediaErr
}

func (f *fakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

func (f *fakeBackend) setCurrent(t float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = t
}

func (f *fakeBackend) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
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

type fullscreenBackend struct {
	*fakeBackend
	calls []bool
}

func (f *fullscreenBackend) SetFullscreen(on bool) error {
	f.calls = append(f.calls, on)
	return nil
}

type legacyFullscreenBackend struct {
	*fakeBackend
	calls []bool
}

func (f *legacyFullscreenBackend) SetFS(on bool) error {
	f.calls = append(f.calls, on)
	return nil
}

type cyclingBackend struct {
	*fakeBackend
	cycles int
}

func (f *cyclingBackend) CycleFullscreen() error {
	f.cycles++
	return nil
}

type progressCall struct {
	profileID, videoID int
	time               float64
}

type fakeAPI struct {
	mu     sync.Mutex
	calls  []progressCall
	status int
	err    error

	// hold, when set, blocks every call until it is closed.
	hold        chan struct{}
	inFlight    int
	maxInFlight int
}

func (f *fakeAPI) UpdateVideoProgress(_ context.Context, profileID, videoID int, t float64) (api.Response[model.ProfileDTO], error) {
	f.mu.Lock()
	f.inFlight++
	f.maxInFlight = max(f.maxInFlight, f.inFlight)
	hold := f.hold
	f.mu.Unlock()

	if hold != nil {
		<-hold
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	f.calls = append(f.calls, progressCall{profileID: profileID, videoID: videoID, time: t})

	if f.err != nil {
		return api.Response[model.ProfileDTO]{}, f.err
	}

	status := f.status
	if status == 0 {
		status = 200
	}
	if status >= 300 {
		return api.Response[model.ProfileDTO]{Status: status}, nil
	}

	return api.Response[model.ProfileDTO]{
		OK:     true,
		Status: status,
		Data: model.ProfileDTO{
			ID:   profileID,
			Name: "server",
			VideoProgress: []model.VideoProgressDTO{
				{ID: videoID, CurrentTime: t, IsStarted: true},
			},
		},
	}, nil
}

func (f *fakeAPI) running() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeProfiles struct {
	mu      sync.Mutex
	profile mo.Option[model.Profile]
}

func (f *fakeProfiles) CurrentProfile() mo.Option[model.Profile] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile
}

func (f *fakeProfiles) SetCurrentProfile(p model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = mo.Some(p)
	return nil
}

type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(key string) mo.Option[string] {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(v)
}

func (m *memoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingNotifier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

var errBoom = errors.New("boom")

// readyStore returns a store with b attached, the view initialized and the duration set.
func readyStore(b Backend, duration float64) *Store {
	store := NewStore()
	store.Attach(b)
	store.SetViewInitialized(true)
	store.SetVideoDuration(duration)
	return store
}
