package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createMinimalMP3 writes a single 128kbps MPEG1 Layer3 frame.
func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	frame := make([]byte, 417)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	frame[3] = 0x00
	require.NoError(t, os.WriteFile(path, frame, 0o600))
}

func TestReadTags_ID3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rain.mp3")
	createMinimalMP3(t, path)

	tg, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tg.SetVersion(4)
	tg.SetDefaultEncoding(id3v2.EncodingUTF8)
	tg.SetTitle("Rain on Leaves")
	tg.SetArtist("Field Recordings")
	tg.SetAlbum("Forest")
	require.NoError(t, tg.Save())
	require.NoError(t, tg.Close())

	got := ReadTags(path)
	assert.Equal(t, Tags{Title: "Rain on Leaves", Artist: "Field Recordings", Album: "Forest"}, got)
}

func TestReadTags_FallsBackToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "night crickets.mp3")
	createMinimalMP3(t, path)

	assert.Equal(t, Tags{Title: "night crickets"}, ReadTags(path))
}

func TestReadTags_MissingFile(t *testing.T) {
	got := ReadTags("/nonexistent/dir/ocean.flac")
	assert.Equal(t, "ocean", got.Title)
	assert.Empty(t, got.Artist)
}
