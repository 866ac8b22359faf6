// Package model maps Videoflix API payloads to the view models used by the player and the TUI.
package model

import (
	"time"

	"golang.org/x/exp/slices"
)

// VideoDTO is the wire shape of a video as served by GET /videos/.
type VideoDTO struct {
	ID                 int       `json:"id" jsonschema:"description=Video identifier."`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Genres             []string  `json:"genres"`
	Language           string    `json:"language"`
	AvailableLanguages []string  `json:"available_languages"`
	Duration           float64   `json:"duration" jsonschema:"description=Length in seconds."`
	ThumbnailURL       string    `json:"thumbnail_url"`
	PreviewURL         string    `json:"preview_url"`
	StreamURL          string    `json:"hls_url" jsonschema:"description=HLS master playlist."`
	IsReady            bool      `json:"is_ready" jsonschema:"description=False while the video is still being transcoded."`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Video is an immutable view of a VideoDTO.
type Video struct {
	id                 int
	title              string
	description        string
	genres             []string
	language           string
	availableLanguages []string
	duration           float64
	thumbnailURL       string
	previewURL         string
	streamURL          string
	ready              bool
	createdAt          time.Time
	updatedAt          time.Time
}

// VideoFromAPI builds a Video. Slices are copied so later changes to the payload don't leak in.
func VideoFromAPI(dto VideoDTO) Video {
	return Video{
		id:                 dto.ID,
		title:              dto.Title,
		description:        dto.Description,
		genres:             slices.Clone(dto.Genres),
		language:           dto.Language,
		availableLanguages: slices.Clone(dto.AvailableLanguages),
		duration:           dto.Duration,
		thumbnailURL:       dto.ThumbnailURL,
		previewURL:         dto.PreviewURL,
		streamURL:          dto.StreamURL,
		ready:              dto.IsReady,
		createdAt:          dto.CreatedAt,
		updatedAt:          dto.UpdatedAt,
	}
}

// ToAPIFormat converts the video back to its wire shape.
func (v Video) ToAPIFormat() VideoDTO {
	return VideoDTO{
		ID:                 v.id,
		Title:              v.title,
		Description:        v.description,
		Genres:             slices.Clone(v.genres),
		Language:           v.language,
		AvailableLanguages: slices.Clone(v.availableLanguages),
		Duration:           v.duration,
		ThumbnailURL:       v.thumbnailURL,
		PreviewURL:         v.previewURL,
		StreamURL:          v.streamURL,
		IsReady:            v.ready,
		CreatedAt:          v.createdAt,
		UpdatedAt:          v.updatedAt,
	}
}

func (v Video) ID() int                      { return v.id }
func (v Video) Title() string                { return v.title }
func (v Video) Description() string          { return v.description }
func (v Video) Genres() []string             { return slices.Clone(v.genres) }
func (v Video) Language() string             { return v.language }
func (v Video) AvailableLanguages() []string { return slices.Clone(v.availableLanguages) }
func (v Video) Duration() float64            { return v.duration }
func (v Video) ThumbnailURL() string         { return v.thumbnailURL }
func (v Video) PreviewURL() string           { return v.previewURL }
func (v Video) StreamURL() string            { return v.streamURL }
func (v Video) IsReady() bool                { return v.ready }
func (v Video) CreatedAt() time.Time         { return v.createdAt }
func (v Video) UpdatedAt() time.Time         { return v.updatedAt }

// HasGenre reports whether the video is tagged with genre, ignoring case.
func (v Video) HasGenre(genre string) bool {
	return slices.ContainsFunc(v.genres, func(g string) bool {
		return equalFold(g, genre)
	})
}
