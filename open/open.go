// Package open hands Videoflix links to the system browser.
package open

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/model"
)

var (
	ErrUnsupportedURL = errors.New("only http and https links can be opened")
	ErrNoPreview      = errors.New("video has no preview")
)

// Preview opens the preview clip of v.
func Preview(v model.Video) error {
	if v.PreviewURL() == "" {
		return ErrNoPreview
	}
	return URL(v.PreviewURL())
}

// URL opens raw with the default handler and returns without waiting for it.
func URL(raw string) error {
	u, err := Validate(raw)
	if err != nil {
		return err
	}

	cmd, err := command(runtime.GOOS, u.String())
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Validate parses raw as an absolute http(s) URL.
func Validate(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}

	if !lo.Contains([]string{"http", "https"}, strings.ToLower(u.Scheme)) || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}
	return u, nil
}

func command(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		// cmd /C start would split the URL on '&'.
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	case constant.Darwin:
		return exec.Command("open", target), nil
	case constant.Linux:
		return exec.Command("xdg-open", target), nil
	case constant.Android:
		return exec.Command("termux-open-url", target), nil
	default:
		return nil, fmt.Errorf("opening links is not supported on %s", goos)
	}
}
