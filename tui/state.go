package tui

type state int

const (
	loadingState state = iota
	errorState
	profilesState
	videosState
	searchState
	detailState
	playerState
)
