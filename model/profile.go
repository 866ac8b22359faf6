package model

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// WatchStatsDTO aggregates a profile's viewing history.
type WatchStatsDTO struct {
	TotalVideosStarted   int     `json:"total_videos_started"`
	TotalVideosCompleted int     `json:"total_videos_completed"`
	TotalWatchTime       float64 `json:"total_watch_time"`
}

type WatchStats struct {
	VideosStarted   int
	VideosCompleted int
	WatchTime       float64
}

func WatchStatsFromAPI(dto WatchStatsDTO) WatchStats {
	return WatchStats{
		VideosStarted:   dto.TotalVideosStarted,
		VideosCompleted: dto.TotalVideosCompleted,
		WatchTime:       dto.TotalWatchTime,
	}
}

func (w WatchStats) ToAPIFormat() WatchStatsDTO {
	return WatchStatsDTO{
		TotalVideosStarted:   w.VideosStarted,
		TotalVideosCompleted: w.VideosCompleted,
		TotalWatchTime:       w.WatchTime,
	}
}

// ProfileDTO is the wire shape returned by the profile endpoints and by a progress save.
type ProfileDTO struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	ProfilePicture *string            `json:"profile_picture"`
	IsKid          bool               `json:"is_kid"`
	Language       string             `json:"preferred_language"`
	VideoProgress  []VideoProgressDTO `json:"video_progress"`
	WatchStats     WatchStatsDTO      `json:"watch_stats"`
}

// Profile is one viewer of an account. A successful progress save replaces it wholesale.
type Profile struct {
	ID            int
	Name          string
	Picture       mo.Option[string]
	Kid           bool
	Language      string
	VideoProgress []VideoProgress
	WatchStats    WatchStats
}

func ProfileFromAPI(dto ProfileDTO) Profile {
	var progress []VideoProgress
	if dto.VideoProgress != nil {
		progress = lo.Map(dto.VideoProgress, func(p VideoProgressDTO, _ int) VideoProgress {
			return VideoProgressFromAPI(p)
		})
	}

	return Profile{
		ID:            dto.ID,
		Name:          dto.Name,
		Picture:       mo.PointerToOption(dto.ProfilePicture),
		Kid:           dto.IsKid,
		Language:      dto.Language,
		VideoProgress: progress,
		WatchStats:    WatchStatsFromAPI(dto.WatchStats),
	}
}

func (p Profile) ToAPIFormat() ProfileDTO {
	var progress []VideoProgressDTO
	if p.VideoProgress != nil {
		progress = lo.Map(p.VideoProgress, func(vp VideoProgress, _ int) VideoProgressDTO {
			return vp.ToAPIFormat()
		})
	}

	return ProfileDTO{
		ID:             p.ID,
		Name:           p.Name,
		ProfilePicture: p.Picture.ToPointer(),
		IsKid:          p.Kid,
		Language:       p.Language,
		VideoProgress:  progress,
		WatchStats:     p.WatchStats.ToAPIFormat(),
	}
}

// ProgressFor finds the watch state of the given video.
func (p Profile) ProgressFor(videoID int) mo.Option[VideoProgress] {
	found, ok := lo.Find(p.VideoProgress, func(vp VideoProgress) bool {
		return vp.ID == videoID
	})
	if !ok {
		return mo.None[VideoProgress]()
	}

	return mo.Some(found)
}

// ContinueWatching lists the videos started but not finished.
func (p Profile) ContinueWatching() []VideoProgress {
	return lo.Filter(p.VideoProgress, func(vp VideoProgress, _ int) bool {
		return vp.InProgress()
	})
}

func (p Profile) String() string {
	if p.Kid {
		return p.Name + " (kids)"
	}

	return p.Name
}
