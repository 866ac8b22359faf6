package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/videoflix/videoflix/auth"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/model"
)

// LoginResult is the body of a successful login.
type LoginResult struct {
	Access  string        `json:"access"`
	Refresh string        `json:"refresh"`
	User    model.UserDTO `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type progressUpdate struct {
	VideoID     int     `json:"video_id"`
	CurrentTime float64 `json:"current_time"`
}

// Login exchanges credentials for a token pair and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (Response[LoginResult], error) {
	res, err := do[LoginResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/login/",
		body:   credentials{Email: email, Password: password},
	})
	if err != nil || !res.IsSuccess() {
		return res, err
	}

	if err := c.tokens.Save(auth.Tokens{Access: res.Data.Access, Refresh: res.Data.Refresh}); err != nil {
		return res, err
	}

	log.Infof("logged in as %s", email)
	return res, nil
}

// Refresh trades the stored refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context) error {
	tokens, err := c.tokens.Load()
	if err != nil {
		return err
	}

	if tokens.Refresh == "" {
		return errors.New("no refresh token stored")
	}

	res, err := do[auth.Tokens](ctx, c, request{
		method: http.MethodPost,
		path:   "/token/refresh/",
		body:   map[string]string{"refresh": tokens.Refresh},
	})
	if err != nil {
		return err
	}

	if !res.IsSuccess() || res.Data.Access == "" {
		return fmt.Errorf("refresh rejected: %s", res.Describe())
	}

	if res.Data.Refresh == "" {
		res.Data.Refresh = tokens.Refresh
	}

	return c.tokens.Save(res.Data)
}

// Logout invalidates the session on the server and forgets the local tokens either way.
func (c *Client) Logout(ctx context.Context) (Response[struct{}], error) {
	tokens, _ := c.tokens.Load()

	res, err := do[struct{}](ctx, c, request{
		method: http.MethodPost,
		path:   "/logout/",
		body:   map[string]string{"refresh": tokens.Refresh},
		authed: true,
	})

	if deleteErr := c.tokens.Delete(); deleteErr != nil {
		return res, deleteErr
	}

	return res, err
}

func (c *Client) Profiles(ctx context.Context) (Response[[]model.ProfileDTO], error) {
	return do[[]model.ProfileDTO](ctx, c, request{
		method: http.MethodGet,
		path:   "/profiles/",
		authed: true,
	})
}

func (c *Client) Profile(ctx context.Context, id int) (Response[model.ProfileDTO], error) {
	return do[model.ProfileDTO](ctx, c, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/profiles/%d/", id),
		authed: true,
	})
}

func (c *Client) Videos(ctx context.Context) (Response[[]model.VideoDTO], error) {
	return do[[]model.VideoDTO](ctx, c, request{
		method: http.MethodGet,
		path:   "/videos/",
		authed: true,
	})
}

func (c *Client) Video(ctx context.Context, id int) (Response[model.VideoDTO], error) {
	return do[model.VideoDTO](ctx, c, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/videos/%d/", id),
		authed: true,
	})
}

// UpdateVideoProgress records the playback position and returns the refreshed profile.
func (c *Client) UpdateVideoProgress(ctx context.Context, profileID, videoID int, currentTime float64) (Response[model.ProfileDTO], error) {
	return do[model.ProfileDTO](ctx, c, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/profiles/%d/progress/", profileID),
		body:   progressUpdate{VideoID: videoID, CurrentTime: currentTime},
		authed: true,
	})
}
