package playback

import (
	"sync"
	"time"
)

// OverlayHideDelay is how long controls stay visible during uninterrupted playback.
const OverlayHideDelay = 3000 * time.Millisecond

// OverlayController hides the on-screen controls after a period without interaction.
type OverlayController struct {
	store *Store
	clock Clock

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

func NewOverlayController(store *Store, clock Clock) *OverlayController {
	return &OverlayController{store: store, clock: clock}
}

// ResetOverlayTimer shows the overlay and, while playing, schedules it to hide.
func (c *OverlayController) ResetOverlayTimer(isPlaying bool) {
	c.store.SetShowOverlay(true)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	if !isPlaying {
		return
	}

	gen := c.gen
	c.timer = c.clock.AfterFunc(OverlayHideDelay, func() {
		c.mu.Lock()
		stale := gen != c.gen
		if !stale {
			c.timer = nil
		}
		c.mu.Unlock()

		if !stale {
			c.store.SetShowOverlay(false)
		}
	})
}

// ClearOverlayTimer cancels a pending hide and leaves visibility as it is.
func (c *OverlayController) ClearOverlayTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *OverlayController) stopLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
