// Package config registers the videoflix settings and loads them through viper.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/style"
)

// Field is a registered setting and its default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Section is the group of the key, the part before the first dot.
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Videoflix + "_" + EnvKeyReplacer.Replace(f.Key))
}

func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Section     string   `json:"section"`
		Env         string   `json:"env"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Allowed     []string `json:"allowed,omitempty"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
	}{
		Key:         f.Key,
		Section:     f.Section(),
		Env:         f.Env(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Allowed:     f.Suggestions(),
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	return fmt.Sprintf("%T", f.Value)
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to VIDEOFLIX_* variables, in registration order.
var EnvExposed []string

func register(k string, v any, desc string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	// api
	register(key.APIBaseURL, "http://localhost:8000/api", "Base URL of the Videoflix REST API")
	register(key.APITimeout, 30, "Timeout of a single API request, in seconds")

	// player
	register(key.Player, "mpv", "Media player used for playback.\nOnly mpv exposes the IPC interface the player controls need")
	register(key.PlayerResume, true, "Resume videos from the last saved position")
	register(key.PlayerHLSNative, true, "Let the player handle HLS itself and start from the highest bitrate")
	register(key.PlayerVolume, 50, "Initial volume of a new player, from 0 to 100")

	// browsing
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching videos")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, nerd (nerd-font required), kaomoji, squares")
	register(key.TUIItemSpacing, 1, "Blank lines between list items")
	register(key.TUIShowURLs, false, "Show stream URLs under list items")
	register(key.TUIWrapWidth, 80, "Maximum width of wrapped video descriptions")

	// diagnostics
	register(key.LogsWrite, false, "Write a daily log file")
	register(key.LogsLevel, "info", "Log verbosity, from least to most verbose:\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Write log lines as JSON")
	register(key.CliColored, true, "Color the help output of the CLI")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"section": style.Tag(color.Background, color.Accent),
	"label":   style.Fg(color.Blue),
	"name":    style.Fg(color.Purple),
	"current": func(k string) any { return viper.Get(k) },
	"join":    strings.Join,
	"show": func(v any) string {
		switch value := v.(type) {
		case bool:
			return style.Fg(lo.Ternary(value, color.Green, color.Red))(fmt.Sprint(value))
		case string:
			return style.Fg(color.Yellow)(fmt.Sprintf("%q", value))
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ section .Section }} {{ name .Key }} {{ faint .Env }}
{{ faint .Description }}
{{ label "Value:" }}   {{ show (current .Key) }}
{{ label "Default:" }} {{ show .Value }}{{ with .Suggestions }}
{{ label "Allowed:" }} {{ join . ", " }}{{ end }}`))
