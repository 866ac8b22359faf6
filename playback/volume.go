package playback

import (
	"sync"

	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/util"
)

// VolumeController keeps backend volume and mute in line with the store.
type VolumeController struct {
	store *Store

	mu          sync.Mutex
	lastAudible float64
}

func NewVolumeController(store *Store) *VolumeController {
	return &VolumeController{store: store}
}

// SetVolume clamps v to [0, 1], unmutes for audible values and mutes at zero.
func (c *VolumeController) SetVolume(v float64) {
	b, ok := c.store.Backend().Get()
	if !ok {
		return
	}

	v = util.Clamp(v, 0, 1)
	if err := b.SetVolume(v); err != nil {
		log.Warnf("set volume: %v", err)
	}
	c.store.SetVolume(v)

	muted, err := b.Muted()
	if err != nil {
		muted = c.store.IsMuted()
	}

	switch {
	case v > 0 && muted:
		c.setMuted(b, false)
	case v == 0 && !muted:
		c.setMuted(b, true)
	}

	if v > 0 {
		c.mu.Lock()
		c.lastAudible = v
		c.mu.Unlock()
	}
}

// ToggleSound mutes, or when muted or silent restores the last audible volume (DefaultVolume if none).
func (c *VolumeController) ToggleSound() {
	b, ok := c.store.Backend().Get()
	if !ok {
		return
	}

	if c.store.IsMuted() || c.store.Volume() == 0 {
		c.mu.Lock()
		restore := c.lastAudible
		c.mu.Unlock()
		if restore <= 0 {
			restore = c.store.Volume()
		}
		if restore <= 0 {
			restore = DefaultVolume
		}

		c.setMuted(b, false)
		c.SetVolume(restore)
		return
	}

	c.mu.Lock()
	c.lastAudible = c.store.Volume()
	c.mu.Unlock()
	c.setMuted(b, true)
}

// Step changes the volume by delta.
func (c *VolumeController) Step(delta float64) {
	c.SetVolume(c.store.Volume() + delta)
}

func (c *VolumeController) setMuted(b Backend, muted bool) {
	if err := b.SetMuted(muted); err != nil {
		log.Warnf("set muted: %v", err)
	}
	c.store.SetMuted(muted)
}
