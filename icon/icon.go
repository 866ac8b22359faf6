// Package icon renders interface symbols in the variant chosen by icons.variant.
package icon

import (
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

var variants = []string{emoji, nerd, plain, kaomoji, squares}

// AvailableVariants lists the values accepted by icons.variant.
func AvailableVariants() []string {
	return slices.Clone(variants)
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) glyph(variant string) string {
	return map[string]string{
		emoji:   d.emoji,
		nerd:    d.nerd,
		plain:   d.plain,
		kaomoji: d.kaomoji,
		squares: d.squares,
	}[variant]
}

// Variant returns the configured variant, or "" when icons are off or the value is unknown.
func Variant() string {
	v := viper.GetString(key.IconsVariant)
	if !lo.Contains(variants, v) {
		return ""
	}
	return v
}

// Get renders i in the configured variant.
func Get(i Icon) string {
	return In(i, Variant())
}

// In renders i in variant. Unknown icons and variants render as "".
func In(i Icon, variant string) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.glyph(variant)
}

// Playback is the symbol of the current player state.
func Playback(playing bool) string {
	return Get(lo.Ternary(playing, Play, Pause))
}

// Sound is the symbol of the current audio state. A zero volume counts as muted.
func Sound(muted bool, volume float64) string {
	return Get(lo.Ternary(muted || volume == 0, Mute, Volume))
}
