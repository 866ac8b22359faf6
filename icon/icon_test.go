package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/key"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Play

		Convey("It renders for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					So(Variant(), ShouldEqual, variant)
					So(Get(target), ShouldNotBeEmpty)
				})
			}
		})

		Convey("Every icon has every variant", func() {
			for _, variant := range AvailableVariants() {
				for i := Fail; i <= Video; i++ {
					So(In(i, variant), ShouldNotBeEmpty)
				}
			}
		})

		Convey("Unknown variants and icons render empty", func() {
			viper.Set(key.IconsVariant, "neon")
			So(Variant(), ShouldBeEmpty)
			So(Get(target), ShouldBeEmpty)
			So(In(Icon(999), plain), ShouldBeEmpty)
		})
	})
}

func TestPlayerSymbols(t *testing.T) {
	Convey("Given plain icons", t, func() {
		viper.Set(key.IconsVariant, plain)

		Convey("Playback follows the player state", func() {
			So(Playback(true), ShouldEqual, ">")
			So(Playback(false), ShouldEqual, "||")
		})

		Convey("Sound treats a zero volume as muted", func() {
			So(Sound(false, 0.5), ShouldEqual, "vol")
			So(Sound(true, 0.5), ShouldEqual, "mute")
			So(Sound(false, 0), ShouldEqual, "mute")
		})
	})
}
