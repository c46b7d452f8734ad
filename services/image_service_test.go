package services

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestCompress_DownscalesWideImage(t *testing.T) {
	is := NewImageService()

	out, err := is.Compress(encodeTestJPEG(t, 2000, 1000))
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	w, h := decodeDims(t, out)
	if w != 800 || h != 400 {
		t.Fatalf("expected 800x400, got %dx%d", w, h)
	}
}

func TestCompress_ClampsBothDimensions(t *testing.T) {
	is := NewImageService()

	// Width clamp alone leaves height over the bound; the second clamp
	// brings it back inside the box.
	out, err := is.Compress(encodeTestJPEG(t, 1600, 3200))
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	w, h := decodeDims(t, out)
	if w > 800 || h > 800 {
		t.Fatalf("output exceeds bounds: %dx%d", w, h)
	}
	if h != 800 || w != 400 {
		t.Fatalf("expected 400x800, got %dx%d", w, h)
	}
}

func TestCompress_NeverUpscales(t *testing.T) {
	is := NewImageService()

	out, err := is.Compress(encodeTestJPEG(t, 300, 200))
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	w, h := decodeDims(t, out)
	if w != 300 || h != 200 {
		t.Fatalf("small input must keep its size, got %dx%d", w, h)
	}
}

func TestCompress_UnreadableInput(t *testing.T) {
	is := NewImageService()

	if _, err := is.Compress([]byte("not an image")); !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
}

func TestToBase64(t *testing.T) {
	is := NewImageService()
	if got := is.ToBase64([]byte{0xff, 0xd8, 0xff}); got != "/9j/" {
		t.Fatalf("unexpected encoding %q", got)
	}
}
