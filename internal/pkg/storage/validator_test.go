package storage

import (
	"bytes"
	"errors"
	"testing"
)

// minimal valid PNG header so http.DetectContentType reports image/png
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestValidateFileAcceptsPNG(t *testing.T) {
	data, mime, err := ValidateFile(bytes.NewReader(pngHeader), CategoryAsset, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("expected image/png, got %s", mime)
	}
	if len(data) != len(pngHeader) {
		t.Fatalf("expected %d bytes, got %d", len(pngHeader), len(data))
	}
}

func TestValidateFileRejectsOversized(t *testing.T) {
	big := append(append([]byte{}, pngHeader...), make([]byte, 2048)...)
	_, _, err := ValidateFile(bytes.NewReader(big), CategoryAsset, 1024)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestValidateFileRejectsEmpty(t *testing.T) {
	_, _, err := ValidateFile(bytes.NewReader(nil), CategoryPhoto, 1024)
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestValidateFileRejectsNonImage(t *testing.T) {
	_, _, err := ValidateFile(bytes.NewReader([]byte("%PDF-1.4 not an image")), CategoryAsset, 1024)
	if !errors.Is(err, ErrInvalidMimeType) {
		t.Fatalf("expected ErrInvalidMimeType, got %v", err)
	}
}

func TestGetExtensionForMime(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"image/webp":      ".webp",
		"image/gif":       ".gif",
		"application/xyz": "",
	}
	for mime, want := range cases {
		if got := GetExtensionForMime(mime); got != want {
			t.Fatalf("mime %s: expected %q, got %q", mime, want, got)
		}
	}
}
