// Package api talks to the Videoflix REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/auth"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/network"
)

// TokenStore persists the JWT pair between runs.
type TokenStore interface {
	Load() (auth.Tokens, error)
	Save(auth.Tokens) error
	Delete() error
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

func WithTokenStore(s TokenStore) Option {
	return func(client *Client) {
		client.tokens = s
	}
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    network.Client,
		tokens:  auth.Keyring{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Default creates a client from the configured base url and timeout.
func Default() *Client {
	timeout := time.Duration(viper.GetInt(key.APITimeout)) * time.Second
	return New(viper.GetString(key.APIBaseURL), WithHTTPClient(network.New(timeout)))
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}

type request struct {
	method string
	path   string
	body   any
	authed bool
}

// do sends r and decodes a 2xx body into T. A 401 on an authenticated call triggers a single token refresh.
func do[T any](ctx context.Context, c *Client, r request) (Response[T], error) {
	res, err := c.send(ctx, r)
	if err != nil {
		return Response[T]{}, err
	}

	if r.authed && res.StatusCode == http.StatusUnauthorized {
		_ = res.Body.Close()

		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			log.Warnf("token refresh failed: %v", refreshErr)
			return Response[T]{Status: http.StatusUnauthorized, Message: auth.ErrNotLoggedIn.Error()}, nil
		}

		if res, err = c.send(ctx, r); err != nil {
			return Response[T]{}, err
		}
	}

	defer res.Body.Close()

	return decode[T](res)
}

func decode[T any](res *http.Response) (Response[T], error) {
	out := Response[T]{
		OK:     res.StatusCode >= 200 && res.StatusCode < 300,
		Status: res.StatusCode,
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return out, fmt.Errorf("read response: %w", err)
	}

	if !out.OK {
		var e errorBody
		if json.Unmarshal(raw, &e) == nil {
			out.Message = e.text()
		}
		log.Debugf("%s %s: %d %s", res.Request.Method, res.Request.URL.Path, res.StatusCode, out.Message)
		return out, nil
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(raw, &out.Data); err != nil {
		return out, fmt.Errorf("decode %s: %w", res.Request.URL.Path, err)
	}

	return out, nil
}

func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.authed {
		tokens, err := c.tokens.Load()
		if err != nil && !errors.Is(err, auth.ErrNotLoggedIn) {
			return nil, err
		}
		if tokens.Access != "" {
			req.Header.Set("Authorization", "Bearer "+tokens.Access)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}

	return res, nil
}
