package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/log"
)

// checks constrain the keys whose type alone does not make a value usable.
var checks = map[string]func(v any) error{
	key.APIBaseURL: func(v any) error {
		u, err := url.Parse(v.(string))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%q is not an http(s) URL", v)
		}
		return nil
	},
	key.APITimeout:     between(1, 600),
	key.Player:         oneOf("mpv"),
	key.PlayerVolume:   between(0, 100),
	key.IconsVariant:   oneOf(icon.AvailableVariants()...),
	key.LogsLevel:      oneOf(log.Levels()...),
	key.TUIItemSpacing: between(0, 5),
	key.TUIWrapWidth:   between(20, 400),
}

func between(low, high int) func(any) error {
	return func(v any) error {
		if n := v.(int); n < low || n > high {
			return fmt.Errorf("%d is outside %d..%d", n, low, high)
		}
		return nil
	}
}

func oneOf(options ...string) func(any) error {
	return func(v any) error {
		if !lo.Contains(options, v.(string)) {
			return fmt.Errorf("%q is not one of %s", v, strings.Join(options, ", "))
		}
		return nil
	}
}

// Parse converts command-line values to the type of the field's default and checks them.
func (f *Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no value for %s", f.Key)
	}

	var (
		v   any
		err error
	)

	switch f.Value.(type) {
	case string:
		v = strings.TrimSpace(raw[0])
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = raw
	default:
		return nil, fmt.Errorf("%s has unsupported type %s", f.Key, f.typeName())
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s value for %s: %s", f.typeName(), f.Key, raw[0])
	}

	if check, ok := checks[f.Key]; ok {
		if err := check(v); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", f.Key, err)
		}
	}
	return v, nil
}

// Suggestions lists values worth completing for the field.
func (f *Field) Suggestions() []string {
	switch f.Key {
	case key.IconsVariant:
		return icon.AvailableVariants()
	case key.LogsLevel:
		return log.Levels()
	case key.Player:
		return []string{"mpv"}
	}

	if _, ok := f.Value.(bool); ok {
		return []string{"true", "false"}
	}
	return nil
}
