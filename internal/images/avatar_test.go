package images

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestDataURIRoundTrip(t *testing.T) {
	raw := []byte{0x01, 0x02, 0xff}
	uri := DataURI(raw, "image/png")
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	mime, data, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, raw, data)
}

func TestParseDataURI_Rejects(t *testing.T) {
	for _, uri := range []string{
		"",
		"https://example.com/a.png",
		"data:image/png;base64,!!!not-base64!!!",
		"data:image/png,no-encoding-marker",
	} {
		_, _, err := ParseDataURI(uri)
		assert.Error(t, err, uri)
	}
}

func TestProcessAvatar(t *testing.T) {
	t.Run("re-encodes a decodable image", func(t *testing.T) {
		out := ProcessAvatar(encodedPNG(t, 16, 16), "image/png")
		assert.True(t, strings.HasPrefix(out, "data:image/webp;base64,"))
	})

	t.Run("downscales oversized images", func(t *testing.T) {
		out := ProcessAvatar(encodedPNG(t, 2048, 1024), "image/png")
		require.True(t, strings.HasPrefix(out, "data:image/webp;base64,"))

		mime, data, err := ParseDataURI(out)
		require.NoError(t, err)
		require.Equal(t, "image/webp", mime)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.LessOrEqual(t, cfg.Width, 512)
		assert.LessOrEqual(t, cfg.Height, 512)
	})

	t.Run("undecodable bytes are stored as submitted", func(t *testing.T) {
		out := ProcessAvatar([]byte("definitely not an image"), "image/png")
		assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))

		_, data, err := ParseDataURI(out)
		require.NoError(t, err)
		assert.Equal(t, []byte("definitely not an image"), data)
	})
}
