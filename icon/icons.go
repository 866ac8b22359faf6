package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Search
	Link
	Mark
	Play
	Pause
	Volume
	Mute
	Profile
	Kid
	Video
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👾",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・)ノ",
		squares: "🟪",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⊙_⊙)",
		squares: "🟦",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "url",
		kaomoji: "(ᵔ◡ᵔ)ノ",
		squares: "🟫",
	},
	Mark: {
		emoji:   "🍿",
		nerd:    "",
		plain:   "*",
		kaomoji: "(＾▽＾)",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(▷)",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(‖)",
		squares: "🟧",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "(♪)",
		squares: "🟦",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "mute",
		kaomoji: "(-_-)",
		squares: "⬛",
	},
	Profile: {
		emoji:   "👤",
		nerd:    "",
		plain:   "@",
		kaomoji: "(・ω・)",
		squares: "🟦",
	},
	Kid: {
		emoji:   "🧸",
		nerd:    "",
		plain:   "kid",
		kaomoji: "(◕‿◕)",
		squares: "🟨",
	},
	Video: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "#",
		kaomoji: "(□_□)",
		squares: "🟥",
	},
}
