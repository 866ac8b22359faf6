package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/videoflix/videoflix/auth"
)

type memoryTokens struct {
	mu     sync.Mutex
	tokens auth.Tokens
}

func (m *memoryTokens) Load() (auth.Tokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens.Access == "" {
		return auth.Tokens{}, auth.ErrNotLoggedIn
	}
	return m.tokens, nil
}

func (m *memoryTokens) Save(t auth.Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = t
	return nil
}

func (m *memoryTokens) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = auth.Tokens{}
	return nil
}

func newTestClient(handler http.Handler) (*Client, *memoryTokens, func()) {
	server := httptest.NewServer(handler)
	tokens := &memoryTokens{}
	client := New(server.URL+"/api/", WithHTTPClient(server.Client()), WithTokenStore(tokens))
	return client, tokens, server.Close
}

func TestResponse(t *testing.T) {
	Convey("Given response envelopes", t, func() {
		So(Response[int]{OK: true, Status: 200}.IsSuccess(), ShouldBeTrue)
		So(Response[int]{Status: 404}.IsNotFound(), ShouldBeTrue)
		So(Response[int]{Status: 404}.IsClientError(), ShouldBeTrue)
		So(Response[int]{Status: 401}.IsUnauthorized(), ShouldBeTrue)
		So(Response[int]{Status: 502}.IsServerError(), ShouldBeTrue)
		So(Response[int]{Status: 502}.IsSuccess(), ShouldBeFalse)
		So(Response[int]{Status: 404}.Describe(), ShouldEqual, "Not Found")
		So(Response[int]{Status: 400, Message: "bad"}.Describe(), ShouldEqual, "bad")
	})
}

func TestLogin(t *testing.T) {
	Convey("Given a server accepting credentials", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
			var body credentials
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password != "secret" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access":"a1","refresh":"r1","user":{"id":1,"email":"ada@example.com"}}`))
		})

		client, tokens, stop := newTestClient(mux)
		defer stop()

		Convey("When logging in with the right password", func() {
			res, err := client.Login(context.Background(), "ada@example.com", "secret")

			Convey("Then the tokens are stored", func() {
				So(err, ShouldBeNil)
				So(res.IsSuccess(), ShouldBeTrue)
				So(res.Data.User.Email, ShouldEqual, "ada@example.com")
				So(tokens.tokens, ShouldResemble, auth.Tokens{Access: "a1", Refresh: "r1"})
			})
		})

		Convey("When logging in with a wrong password", func() {
			res, err := client.Login(context.Background(), "ada@example.com", "nope")

			Convey("Then the server message is kept and nothing is stored", func() {
				So(err, ShouldBeNil)
				So(res.IsClientError(), ShouldBeTrue)
				So(res.Message, ShouldEqual, "Invalid credentials")
				So(tokens.tokens.Access, ShouldBeEmpty)
			})
		})
	})
}

func TestAuthenticatedRequests(t *testing.T) {
	Convey("Given a server with an expired access token", t, func() {
		var refreshes atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
			refreshes.Add(1)
			_, _ = w.Write([]byte(`{"access":"fresh"}`))
		})
		mux.HandleFunc("/api/videos/", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`[{"id":1,"title":"Ocean","hls_url":"http://localhost/master.m3u8"}]`))
		})

		client, tokens, stop := newTestClient(mux)
		defer stop()
		_ = tokens.Save(auth.Tokens{Access: "stale", Refresh: "r1"})

		Convey("When listing videos", func() {
			res, err := client.Videos(context.Background())

			Convey("Then the token is refreshed once and the call retried", func() {
				So(err, ShouldBeNil)
				So(res.IsSuccess(), ShouldBeTrue)
				So(len(res.Data), ShouldEqual, 1)
				So(res.Data[0].StreamURL, ShouldEqual, "http://localhost/master.m3u8")
				So(refreshes.Load(), ShouldEqual, 1)
				So(tokens.tokens, ShouldResemble, auth.Tokens{Access: "fresh", Refresh: "r1"})
			})
		})
	})

	Convey("Given a server that rejects every token", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		mux.HandleFunc("/api/profiles/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		client, tokens, stop := newTestClient(mux)
		defer stop()
		_ = tokens.Save(auth.Tokens{Access: "stale", Refresh: "r1"})

		Convey("Then the call reports unauthorized without an error", func() {
			res, err := client.Profiles(context.Background())
			So(err, ShouldBeNil)
			So(res.IsUnauthorized(), ShouldBeTrue)
		})
	})
}

func TestUpdateVideoProgress(t *testing.T) {
	Convey("Given a server recording progress", t, func() {
		var got progressUpdate
		var path string
		mux := http.NewServeMux()
		mux.HandleFunc("/api/profiles/3/progress/", func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"id":3,"name":"Ada","video_progress":[{"id":7,"current_time":42}]}`))
		})

		client, tokens, stop := newTestClient(mux)
		defer stop()
		_ = tokens.Save(auth.Tokens{Access: "a1"})

		Convey("When a position is saved", func() {
			res, err := client.UpdateVideoProgress(context.Background(), 3, 7, 42)

			Convey("Then the body names the video and time and the profile comes back", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, "/api/profiles/3/progress/")
				So(got, ShouldResemble, progressUpdate{VideoID: 7, CurrentTime: 42})
				So(res.Data.ID, ShouldEqual, 3)
				So(res.Data.VideoProgress[0].CurrentTime, ShouldEqual, 42)
			})
		})
	})

	Convey("Given an unreachable server", t, func() {
		client := New("http://127.0.0.1:1/api", WithTokenStore(&memoryTokens{}))

		Convey("Then the transport error is returned", func() {
			_, err := client.UpdateVideoProgress(context.Background(), 1, 1, 1)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLogout(t *testing.T) {
	Convey("Given a logged in client", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/logout/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		client, tokens, stop := newTestClient(mux)
		defer stop()
		_ = tokens.Save(auth.Tokens{Access: "a1", Refresh: "r1"})

		Convey("Then logging out forgets the tokens", func() {
			res, err := client.Logout(context.Background())
			So(err, ShouldBeNil)
			So(res.IsSuccess(), ShouldBeTrue)
			So(tokens.tokens.Access, ShouldBeEmpty)
		})
	})
}
