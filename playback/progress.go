package playback

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/storage"
)

// SaveInterval is the minimum time between two progress saves.
const SaveInterval = 15000 * time.Millisecond

const saveFailedMessage = "Your progress could not be saved."

// ProgressAPI records watch progress on the server.
type ProgressAPI interface {
	UpdateVideoProgress(ctx context.Context, profileID, videoID int, currentTime float64) (api.Response[model.ProfileDTO], error)
}

// ProfileCache holds the profile currently watching.
type ProfileCache interface {
	CurrentProfile() mo.Option[model.Profile]
	SetCurrentProfile(p model.Profile) error
}

// KV is the local fallback storage for resume positions.
type KV interface {
	Get(key string) mo.Option[string]
	Set(key, value string) error
	Remove(key string) error
}

// ProgressService persists playback positions and resolves where to resume.
type ProgressService struct {
	store    *Store
	api      ProgressAPI
	profiles ProfileCache
	local    KV
	notify   Notifier
	clock    Clock
}

func NewProgressService(store *Store, api ProgressAPI, profiles ProfileCache, local KV, notify Notifier, clock Clock) *ProgressService {
	if notify == nil {
		notify = discardNotifier{}
	}
	return &ProgressService{
		store:    store,
		api:      api,
		profiles: profiles,
		local:    local,
		notify:   notify,
		clock:    clock,
	}
}

// UpdateProgress saves the backend position when lastSave is zero or older than SaveInterval.
// It returns the new save time, or lastSave when nothing was saved or the save failed.
func (p *ProgressService) UpdateProgress(ctx context.Context, profileID, videoID int, lastSave time.Time) time.Time {
	b, ok := p.store.Backend().Get()
	if !ok || videoID == 0 || p.store.Video().ID != videoID {
		return lastSave
	}

	current, err := b.CurrentTime()
	if err != nil || current <= 0 {
		return lastSave
	}

	if paused, err := b.Paused(); err == nil {
		p.store.SetPlaying(!paused)
	}

	now := p.clock.Now()
	if !elapsed(lastSave, now, SaveInterval) {
		return lastSave
	}

	return p.save(ctx, profileID, videoID, current, lastSave, now)
}

func (p *ProgressService) save(ctx context.Context, profileID, videoID int, current float64, lastSave, now time.Time) time.Time {
	if err := p.local.Set(storage.ResumeKey(videoID), storage.FormatSeconds(current)); err != nil {
		log.Warnf("write resume fallback for video %d: %v", videoID, err)
	}

	if profileID == 0 {
		p.store.SetLastSaveTime(now)
		return now
	}

	res, err := p.api.UpdateVideoProgress(ctx, profileID, videoID, current)
	if err != nil {
		log.Errorf("save progress of video %d: %v", videoID, err)
		p.notify.Error(saveFailedMessage)
		return lastSave
	}

	if !res.IsSuccess() {
		log.Warnf("save progress of video %d: %d %s", videoID, res.Status, res.Describe())
		p.notify.Error(saveFailedMessage)
		return lastSave
	}

	if err := p.profiles.SetCurrentProfile(model.ProfileFromAPI(res.Data)); err != nil {
		log.Warnf("cache profile %d: %v", profileID, err)
	}

	log.WithFields(map[string]any{
		"video":   videoID,
		"profile": profileID,
		"time":    current,
	}).Debug("progress saved")

	p.store.SetLastSaveTime(now)
	return now
}

// ResumeTime returns where the current video should start. With profileID 0 only the local
// fallback is read. Otherwise the cached profile's progress entry wins over the fallback, and
// without a cached profile playback starts at 0.
func (p *ProgressService) ResumeTime(profileID int) float64 {
	videoID := p.store.Video().ID
	if videoID == 0 {
		return 0
	}

	key := storage.ResumeKey(videoID)

	if profileID == 0 {
		return p.localResume(key)
	}

	profile, ok := p.profiles.CurrentProfile().Get()
	if !ok {
		return 0
	}

	if entry, ok := profile.ProgressFor(videoID).Get(); ok && entry.CurrentTime > 0 {
		if err := p.local.Set(key, storage.FormatSeconds(entry.CurrentTime)); err != nil {
			log.Warnf("refresh resume fallback for video %d: %v", videoID, err)
		}
		return entry.CurrentTime
	}

	return p.localResume(key)
}

func (p *ProgressService) localResume(key string) float64 {
	if raw, ok := p.local.Get(key).Get(); ok {
		return storage.ParseSeconds(raw).OrElse(0)
	}
	return 0
}

// ClearResume removes the local fallback of a finished video.
func (p *ProgressService) ClearResume(videoID int) error {
	return p.local.Remove(storage.ResumeKey(videoID))
}
