package playback

import "github.com/videoflix/videoflix/log"

// FullscreenController toggles fullscreen on whichever entry point the backend offers.
type FullscreenController struct {
	store *Store
}

func NewFullscreenController(store *Store) *FullscreenController {
	return &FullscreenController{store: store}
}

func (c *FullscreenController) Toggle() {
	if c.store.IsFullscreen() {
		c.Exit()
	} else {
		c.Enter()
	}
}

func (c *FullscreenController) Enter() {
	c.store.SetFullscreen(true)
	c.apply(true)
}

func (c *FullscreenController) Exit() {
	c.store.SetFullscreen(false)
	c.apply(false)
}

func (c *FullscreenController) apply(on bool) {
	b, ok := c.store.Backend().Get()
	if !ok {
		return
	}

	var err error
	switch fs := b.(type) {
	case Fullscreener:
		err = fs.SetFullscreen(on)
	case LegacyFullscreener:
		err = fs.SetFS(on)
	case FullscreenCycler:
		err = fs.CycleFullscreen()
	default:
		return
	}

	if err != nil {
		log.Debugf("fullscreen %v: %v", on, err)
	}
}
