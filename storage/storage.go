// Package storage provides the persistent and session key/value stores of the client.
package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/filesystem"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/where"
)

// SessionLifetime bounds how long session entries survive between runs.
const SessionLifetime = 12 * time.Hour

// Store is a string key/value map persisted as a single gache file.
type Store struct {
	mu    sync.Mutex
	cache *gache.Cache[map[string]string]
}

// New opens the store at path. A zero lifetime never expires.
func New(path string, lifetime time.Duration) *Store {
	return &Store{
		cache: gache.New[map[string]string](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

var (
	local, session         *Store
	localOnce, sessionOnce sync.Once
)

// Local is the persistent store. It holds the fallback resume positions.
func Local() *Store {
	localOnce.Do(func() {
		local = New(where.LocalStorage(), 0)
	})
	return local
}

// Session holds the current user, profile and video between runs of the same session.
func Session() *Store {
	sessionOnce.Do(func() {
		session = New(where.SessionStorage(), SessionLifetime)
	})
	return session
}

func (s *Store) load() map[string]string {
	data, expired, err := s.cache.Get()
	if err != nil {
		log.Warnf("storage: %v", err)
	}
	if err != nil || expired || data == nil {
		return make(map[string]string)
	}
	return data
}

func (s *Store) Get(key string) mo.Option[string] {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.load()[key]
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(value)
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	data[key] = value
	return s.cache.Set(data)
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.cache.Set(data)
}

// Keys lists every stored key.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache.Set(make(map[string]string))
}

// GetJSON decodes the value under key into T.
func GetJSON[T any](s *Store, key string) mo.Option[T] {
	raw, ok := s.Get(key).Get()
	if !ok {
		return mo.None[T]()
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		log.Warnf("storage: decode %s: %v", key, err)
		return mo.None[T]()
	}
	return mo.Some(value)
}

func SetJSON[T any](s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// ResumeKey names the local fallback entry of a video.
func ResumeKey(videoID int) string {
	return constant.ResumePrefix + strconv.Itoa(videoID)
}

// FormatSeconds renders a playback position the way resume entries store it.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// ParseSeconds reads a resume entry. Malformed or negative values are absent.
func ParseSeconds(raw string) mo.Option[float64] {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds < 0 {
		return mo.None[float64]()
	}
	return mo.Some(seconds)
}
