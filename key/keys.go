// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Videoflix API - these keys locate and tune the remote REST backend.
const (
	APIBaseURL = "api.base_url"
	APITimeout = "api.timeout"
)

// Media Playback - these keys configure the external player and progress persistence.
const (
	Player          = "player.default"
	PlayerResume    = "player.resume"
	PlayerHLSNative = "player.hls_native"
	PlayerVolume    = "player.volume"
)

// Search Interaction - these keys define the UI/UX parameters for video discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive player environment.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
	TUIWrapWidth   = "tui.wrap_width"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
