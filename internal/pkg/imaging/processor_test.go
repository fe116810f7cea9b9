package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"testing"
)

// 1x1 lossy webp (RIFF + VP8 chunk), the smallest valid file the decoder
// accepts. There is no webp encoder in Go, so tests can't generate one.
var tinyWebP = []byte{
	0x52, 0x49, 0x46, 0x46, 0x24, 0x00, 0x00, 0x00,
	0x57, 0x45, 0x42, 0x50, 0x56, 0x50, 0x38, 0x20,
	0x18, 0x00, 0x00, 0x00, 0x30, 0x01, 0x00, 0x9D,
	0x01, 0x2A, 0x01, 0x00, 0x01, 0x00, 0x02, 0x00,
	0x34, 0x25, 0xA4, 0x00, 0x03, 0x70, 0x00, 0xFE,
	0xFB, 0xFD, 0x50, 0x00,
}

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	return img
}

func TestProcessResizesOversizedJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(100, 50), nil); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	p := NewProcessor(Config{MaxWidth: 50, MaxHeight: 50, ThumbWidth: 10, Quality: 85})
	got, err := p.Process(&buf)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got.Width != 50 || got.Height != 25 {
		t.Errorf("expected 50x25 after fit, got %dx%d", got.Width, got.Height)
	}
	if got.ContentType != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", got.ContentType)
	}
	if !bytes.HasPrefix(got.Original, []byte{0xFF, 0xD8}) {
		t.Error("original should be JPEG encoded")
	}
}

func TestProcessGIFStaysGIF(t *testing.T) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, testImage(10, 10), nil); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	p := NewProcessor(DefaultConfig())
	got, err := p.Process(&buf)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got.ContentType != "image/gif" {
		t.Errorf("expected image/gif, got %s", got.ContentType)
	}
	if !bytes.HasPrefix(got.Original, []byte("GIF8")) {
		t.Error("original should stay GIF encoded, matching its content type")
	}
	if !bytes.HasPrefix(got.Thumbnail, []byte("GIF8")) {
		t.Error("thumbnail should stay GIF encoded")
	}
}

func TestProcessWebPNormalizedToJPEG(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	got, err := p.Process(bytes.NewReader(tinyWebP))
	if err != nil {
		t.Fatalf("Process failed on webp: %v", err)
	}
	if got.ContentType != "image/jpeg" {
		t.Errorf("webp should be re-encoded as image/jpeg, got %s", got.ContentType)
	}
	if !bytes.HasPrefix(got.Original, []byte{0xFF, 0xD8}) {
		t.Error("original should be JPEG encoded")
	}
	if got.Width != 1 || got.Height != 1 {
		t.Errorf("expected 1x1, got %dx%d", got.Width, got.Height)
	}
}

func TestProcessRejectsCorruptData(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	// JPEG magic followed by garbage: passes MIME sniffing, fails decoding
	corrupt := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("definitely not a jpeg body")...)
	if _, err := p.Process(bytes.NewReader(corrupt)); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage for corrupt jpeg, got %v", err)
	}

	if _, err := p.Process(bytes.NewReader([]byte("plain text"))); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage for unknown format, got %v", err)
	}
}
