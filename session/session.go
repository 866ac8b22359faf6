// Package session tracks who is watching: the logged-in user, the selected profile and the last opened video.
package session

import (
	"github.com/samber/mo"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/storage"
)

type Session struct {
	store *storage.Store
}

func New(store *storage.Store) *Session {
	return &Session{store: store}
}

// Default is backed by the session storage file.
func Default() *Session {
	return New(storage.Session())
}

func (s *Session) CurrentUser() mo.Option[model.User] {
	dto, ok := storage.GetJSON[model.UserDTO](s.store, constant.SessionUser).Get()
	if !ok {
		return mo.None[model.User]()
	}
	return mo.Some(model.UserFromAPI(dto))
}

func (s *Session) SetCurrentUser(u model.User) error {
	return storage.SetJSON(s.store, constant.SessionUser, u.ToAPIFormat())
}

func (s *Session) CurrentProfile() mo.Option[model.Profile] {
	dto, ok := storage.GetJSON[model.ProfileDTO](s.store, constant.SessionProfile).Get()
	if !ok {
		return mo.None[model.Profile]()
	}
	return mo.Some(model.ProfileFromAPI(dto))
}

// SetCurrentProfile replaces the cached profile wholesale.
func (s *Session) SetCurrentProfile(p model.Profile) error {
	return storage.SetJSON(s.store, constant.SessionProfile, p.ToAPIFormat())
}

func (s *Session) CurrentVideo() mo.Option[model.Video] {
	dto, ok := storage.GetJSON[model.VideoDTO](s.store, constant.SessionVideo).Get()
	if !ok {
		return mo.None[model.Video]()
	}
	return mo.Some(model.VideoFromAPI(dto))
}

func (s *Session) SetCurrentVideo(v model.Video) error {
	return storage.SetJSON(s.store, constant.SessionVideo, v.ToAPIFormat())
}

// Clear forgets everything, e.g. on logout.
func (s *Session) Clear() error {
	for _, key := range []string{constant.SessionUser, constant.SessionProfile, constant.SessionVideo} {
		if err := s.store.Remove(key); err != nil {
			return err
		}
	}
	return nil
}
