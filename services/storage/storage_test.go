package storage

import (
	"bytes"
	"errors"
	"testing"

	"lawease/utils"
)

var (
	pngHeader  = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	webpHeader = []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")
)

func TestReadImage(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantType string
		wantErr  error
	}{
		{"png", pngHeader, "image/png", nil},
		{"jpeg", jpegHeader, "image/jpeg", nil},
		{"webp", webpHeader, "image/webp", nil},
		{"gif rejected", []byte("GIF89a......"), "", ErrImageType},
		{"pdf rejected", []byte("%PDF-1.4\n"), "", ErrImageType},
		{"empty", nil, "", ErrImageEmpty},
		{"too large", append(append([]byte{}, pngHeader...), make([]byte, utils.MaxImageBytes)...), "", ErrImageTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ReadImage(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadImage() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && img.ContentType != tt.wantType {
				t.Errorf("ContentType = %q, want %q", img.ContentType, tt.wantType)
			}
		})
	}
}

func TestImageExtension(t *testing.T) {
	img := &Image{ContentType: "image/webp"}
	if img.Extension() != ".webp" {
		t.Errorf("Extension() = %q, want .webp", img.Extension())
	}
}

func TestS3ObjectURL(t *testing.T) {
	s := &S3Storage{bucket: "lawease-images", region: "ap-south-1"}
	want := "https://lawease-images.s3.ap-south-1.amazonaws.com/lawyers/a.png"
	if got := s.objectURL("lawyers/a.png"); got != want {
		t.Errorf("objectURL() = %q, want %q", got, want)
	}
}
