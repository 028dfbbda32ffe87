package service

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/mkallio/fridgechef/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadConfig() config.UploadConfig {
	return config.UploadConfig{
		MaxSizeBytes: 10 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "image/heic"},
	}
}

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: "fridge.jpg",
		Header:   h,
		Size:     size,
	}
}

func TestValidateUpload(t *testing.T) {
	cfg := uploadConfig()

	t.Run("no files", func(t *testing.T) {
		err := ValidateUpload(nil, cfg)
		require.Error(t, err)
		assert.Equal(t, "No image file provided", err.Error())

		err = ValidateUpload([]*multipart.FileHeader{}, cfg)
		require.Error(t, err)
		assert.Equal(t, "No image file provided", err.Error())
	})

	t.Run("too large", func(t *testing.T) {
		err := ValidateUpload([]*multipart.FileHeader{fileHeader("image/jpeg", 11<<20)}, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
		assert.Contains(t, err.Error(), "10MB")
	})

	t.Run("unsupported type", func(t *testing.T) {
		for _, ct := range []string{"application/pdf", "text/plain", "image/gif", ""} {
			err := ValidateUpload([]*multipart.FileHeader{fileHeader(ct, 1024)}, cfg)
			require.Error(t, err, "content type %q", ct)
			assert.Contains(t, err.Error(), "Unsupported image type", "content type %q", ct)
		}
	})

	t.Run("valid upload", func(t *testing.T) {
		for _, ct := range cfg.AllowedTypes {
			assert.NoError(t, ValidateUpload([]*multipart.FileHeader{fileHeader(ct, 1024)}, cfg))
		}
	})

	t.Run("content type parameters are ignored", func(t *testing.T) {
		err := ValidateUpload([]*multipart.FileHeader{fileHeader("image/jpeg; charset=binary", 1024)}, cfg)
		assert.NoError(t, err)
	})

	t.Run("exactly max size passes", func(t *testing.T) {
		err := ValidateUpload([]*multipart.FileHeader{fileHeader("image/png", cfg.MaxSizeBytes)}, cfg)
		assert.NoError(t, err)
	})
}
