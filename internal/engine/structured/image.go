package structured

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Decoders for the image formats vision backends accept.
	_ "image/gif"
	_ "image/jpeg"

	"github.com/nfnt/resize"
)

// maxImageDimension is the largest width or height submitted to a vision
// backend. Oversized images are rejected or degrade extraction quality.
const maxImageDimension = 1536

// prepareImage downscales an image whose largest dimension exceeds
// maxImageDimension, preserving aspect ratio. Images already within bounds
// pass through untouched (original bytes, original MIME). Downscaled images
// are re-encoded as PNG.
func prepareImage(data []byte, mimeType string) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("structured: decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxImageDimension && bounds.Dy() <= maxImageDimension {
		return data, mimeType, nil
	}

	scaled := resize.Thumbnail(maxImageDimension, maxImageDimension, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, "", fmt.Errorf("structured: encode image: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}
