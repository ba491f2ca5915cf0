package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

// MaxAvatarBytes caps multipart avatar uploads.
const MaxAvatarBytes = 5 * 1024 * 1024

const maxEdge = 512

// ProcessAvatar decodes an uploaded image, downscales it so the longer
// edge is at most 512px, re-encodes it as WebP and returns it as an
// inline data URI. Payloads that claim an image type but cannot be
// decoded are stored as submitted, so the upload never fails on an
// exotic encoder.
func ProcessAvatar(data []byte, mime string) string {
	img, err := decode(data, mime)
	if err != nil {
		log.Printf("images: avatar decode failed (%s), storing original: %v", mime, err)
		return DataURI(data, mime)
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		log.Printf("images: webp encode failed, storing original: %v", err)
		return DataURI(data, mime)
	}

	return DataURI(buf.Bytes(), "image/webp")
}

// DataURI wraps raw bytes as a base64 data URI.
func DataURI(data []byte, mime string) string {
	if mime == "" {
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURI splits a data URI back into mime type and raw bytes.
func ParseDataURI(uri string) (mime string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data uri")
	}
	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("unsupported data uri encoding")
	}
	mime = rest[:sep]
	data, err = base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, err
	}
	return mime, data, nil
}

func decode(data []byte, mime string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}
	if strings.Contains(mime, "webp") {
		return webp.Decode(bytes.NewReader(data))
	}
	return nil, err
}

func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(w)
	if h > w {
		scale = float64(maxEdge) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
