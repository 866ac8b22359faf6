package model

import (
	"strings"
	"time"

	"github.com/samber/mo"
)

// Watch statuses reported by the API.
const (
	StatusNotStarted = "not_started"
	StatusWatching   = "watching"
	StatusCompleted  = "completed"
)

// VideoProgressDTO is the per-profile watch state of one video.
type VideoProgressDTO struct {
	ID                 int        `json:"id"`
	Title              string     `json:"title"`
	ThumbnailURL       string     `json:"thumbnail_url"`
	CurrentTime        float64    `json:"current_time"`
	ProgressPercentage float64    `json:"progress_percentage"`
	Duration           float64    `json:"duration"`
	Status             string     `json:"status"`
	IsCompleted        bool       `json:"is_completed"`
	IsStarted          bool       `json:"is_started"`
	CompletionCount    int        `json:"completion_count"`
	TotalWatchTime     float64    `json:"total_watch_time"`
	FirstWatchedAt     *time.Time `json:"first_watched_at"`
	LastWatchedAt      *time.Time `json:"last_watched_at"`
	LastCompletedAt    *time.Time `json:"last_completed_at"`
}

// VideoProgress is the watch state of a video for one profile. ID is the video id.
type VideoProgress struct {
	ID                 int
	Title              string
	ThumbnailURL       string
	CurrentTime        float64
	ProgressPercentage float64
	Duration           float64
	Status             string
	Completed          bool
	Started            bool
	CompletionCount    int
	TotalWatchTime     float64
	FirstWatchedAt     mo.Option[time.Time]
	LastWatchedAt      mo.Option[time.Time]
	LastCompletedAt    mo.Option[time.Time]
}

func VideoProgressFromAPI(dto VideoProgressDTO) VideoProgress {
	return VideoProgress{
		ID:                 dto.ID,
		Title:              dto.Title,
		ThumbnailURL:       dto.ThumbnailURL,
		CurrentTime:        dto.CurrentTime,
		ProgressPercentage: dto.ProgressPercentage,
		Duration:           dto.Duration,
		Status:             dto.Status,
		Completed:          dto.IsCompleted,
		Started:            dto.IsStarted,
		CompletionCount:    dto.CompletionCount,
		TotalWatchTime:     dto.TotalWatchTime,
		FirstWatchedAt:     mo.PointerToOption(dto.FirstWatchedAt),
		LastWatchedAt:      mo.PointerToOption(dto.LastWatchedAt),
		LastCompletedAt:    mo.PointerToOption(dto.LastCompletedAt),
	}
}

func (p VideoProgress) ToAPIFormat() VideoProgressDTO {
	return VideoProgressDTO{
		ID:                 p.ID,
		Title:              p.Title,
		ThumbnailURL:       p.ThumbnailURL,
		CurrentTime:        p.CurrentTime,
		ProgressPercentage: p.ProgressPercentage,
		Duration:           p.Duration,
		Status:             p.Status,
		IsCompleted:        p.Completed,
		IsStarted:          p.Started,
		CompletionCount:    p.CompletionCount,
		TotalWatchTime:     p.TotalWatchTime,
		FirstWatchedAt:     p.FirstWatchedAt.ToPointer(),
		LastWatchedAt:      p.LastWatchedAt.ToPointer(),
		LastCompletedAt:    p.LastCompletedAt.ToPointer(),
	}
}

// InProgress reports whether the video was started and has a position worth resuming.
func (p VideoProgress) InProgress() bool {
	return p.Started && !p.Completed && p.CurrentTime > 0
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
