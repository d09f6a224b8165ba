package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play   string
	Pause  string
	Stop   string
	Loop   string
	Track  string
	Volume string
}

var (
	nerdIcons = Icons{
		Play:   "", // nf-fa-play
		Pause:  "", // nf-fa-pause
		Stop:   "", // nf-fa-stop
		Loop:   "󰑖",      // nf-md-repeat
		Track:  " ", // nf-fa-music
		Volume: "", // nf-fa-volume_up
	}

	unicodeIcons = Icons{
		Play:   "▶",
		Pause:  "⏸",
		Stop:   "■",
		Loop:   "⟳",
		Track:  "♪ ",
		Volume: "vol",
	}

	noneIcons = Icons{
		Play:   ">",
		Pause:  "||",
		Stop:   "[]",
		Loop:   "[L]",
		Track:  "",
		Volume: "vol",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Unknown styles use unicode.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Play returns the playing indicator.
func Play() string {
	return current.Play
}

// Pause returns the paused indicator.
func Pause() string {
	return current.Pause
}

// Stop returns the indicator for idle and stopped sessions.
func Stop() string {
	return current.Stop
}

// Loop returns the loop indicator.
func Loop() string {
	return current.Loop
}

// Volume returns the volume label.
func Volume() string {
	return current.Volume
}

// FormatTrack formats a track name with the appropriate icon.
func FormatTrack(name string) string {
	return current.Track + name
}
