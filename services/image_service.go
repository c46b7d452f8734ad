package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// ErrEncode wraps failures to read the source image or produce the
// compressed output.
var ErrEncode = errors.New("failed to compress image")

// Defaults matching the analysis endpoint's practical limits.
const (
	DefaultMaxWidth  = 800
	DefaultMaxHeight = 800
	DefaultQuality   = 80
)

// ImageService downsizes arbitrary input images to a bounded box and
// re-encodes them as JPEG before transmission.
type ImageService struct {
	maxWidth  int
	maxHeight int
	quality   int
}

func NewImageService() *ImageService {
	return &ImageService{
		maxWidth:  DefaultMaxWidth,
		maxHeight: DefaultMaxHeight,
		quality:   DefaultQuality,
	}
}

// Compress decodes src, scales it down preserving aspect ratio so neither
// dimension exceeds the bounds (never upscaling), and re-encodes it as
// JPEG at the configured quality.
func (is *ImageService) Compress(src []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Clamp width first, then re-check height; the result stays inside
	// maxWidth x maxHeight with the original aspect ratio.
	if width > is.maxWidth {
		height = int(math.Round(float64(height) * float64(is.maxWidth) / float64(width)))
		width = is.maxWidth
	}
	if height > is.maxHeight {
		width = int(math.Round(float64(width) * float64(is.maxHeight) / float64(height)))
		height = is.maxHeight
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: is.quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// ToBase64 converts a compressed payload into the text form embedded in
// the JSON request body.
func (is *ImageService) ToBase64(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}
