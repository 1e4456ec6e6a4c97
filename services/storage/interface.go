package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"lawease/utils"
)

// UploadResult identifies a stored image.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// ImageStorage stores profile images.
type ImageStorage interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var (
	ErrImageTooLarge   = utils.NewValidation(fmt.Sprintf("Image must be at most %d MB", utils.MaxImageBytes>>20))
	ErrImageType       = utils.NewValidation("Only JPEG, PNG and WebP images are allowed")
	ErrImageEmpty      = utils.NewValidation("Image file is empty")
	ErrStorageDisabled = utils.NewDomain("Image uploads are not configured")
)

// Image is a validated upload held in memory.
type Image struct {
	Data        []byte
	ContentType string
}

func (i *Image) Reader() io.Reader { return bytes.NewReader(i.Data) }

// Extension returns the file extension for the detected type.
func (i *Image) Extension() string { return allowedImageTypes[i.ContentType] }

// ReadImage reads at most MaxImageBytes and checks the content type from the
// bytes themselves, ignoring whatever the client claimed.
func ReadImage(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, utils.MaxImageBytes+1))
	if err != nil {
		return nil, utils.NewInternal("failed to read image", err)
	}
	if len(data) == 0 {
		return nil, ErrImageEmpty
	}
	if len(data) > utils.MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	contentType := http.DetectContentType(data)
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, ErrImageType
	}
	return &Image{Data: data, ContentType: contentType}, nil
}
