package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/mkallio/fridgechef/internal/config"
	"github.com/mkallio/fridgechef/internal/domain"
)

// ValidateUpload checks the uploaded files for presence, size and content
// type. Pure function of its inputs and the upload configuration; each
// rejection carries its own message so the caller can surface it directly.
func ValidateUpload(files []*multipart.FileHeader, cfg config.UploadConfig) error {
	if len(files) == 0 || files[0] == nil {
		return &ValidationError{Message: "No image file provided"}
	}

	fh := files[0]

	if fh.Size > cfg.MaxSizeBytes {
		return &ValidationError{Message: fmt.Sprintf("Image file too large (max %dMB)", cfg.MaxSizeBytes>>20)}
	}

	mediaType := contentType(fh)
	for _, allowed := range cfg.AllowedTypes {
		if mediaType == allowed {
			return nil
		}
	}

	return &ValidationError{Message: "Unsupported image type. Upload a JPEG, PNG, WebP or HEIC photo"}
}

// readImage loads the validated upload into memory
func readImage(fh *multipart.FileHeader) (*domain.ImagePayload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return &domain.ImagePayload{
		Data:     data,
		MimeType: contentType(fh),
		Size:     fh.Size,
	}, nil
}

// contentType returns the declared media type without parameters
func contentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
