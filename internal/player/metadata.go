package player

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Tags holds the descriptive metadata of a track.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// ReadTags reads embedded tags from path. Missing or unreadable tags are not
// an error: the title falls back to the file name without extension.
func ReadTags(path string) Tags {
	t := Tags{Title: baseTitle(path)}

	f, err := os.Open(path)
	if err != nil {
		return t
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return t
	}

	if title := strings.TrimSpace(m.Title()); title != "" {
		t.Title = title
	}
	t.Artist = strings.TrimSpace(m.Artist())
	if t.Artist == "" {
		t.Artist = strings.TrimSpace(m.AlbumArtist())
	}
	t.Album = strings.TrimSpace(m.Album())
	return t
}

func baseTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
