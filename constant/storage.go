package constant

// Storage keys shared by the local and session stores.
const (
	// ResumePrefix prefixes the local fallback resume position of a video: "resume:<videoId>".
	ResumePrefix = "resume:"

	// SessionVideo caches the metadata of the video being watched, so a reload skips the network.
	SessionVideo = "current_video"

	// SessionUser holds the authenticated user.
	SessionUser = "current_user"

	// SessionProfile holds the active profile snapshot as last confirmed by the server.
	SessionProfile = "current_profile"
)
