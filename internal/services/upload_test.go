package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/aed-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUploaderSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"auto without credentials", config.Config{UploadBackend: "auto"}, "none"},
		{"explicit none", config.Config{UploadBackend: "none", S3Bucket: "b"}, "none"},
		{"auto prefers cloudinary", config.Config{
			UploadBackend:       "auto",
			CloudinaryName:      "demo",
			CloudinaryAPIKey:    "key",
			CloudinaryAPISecret: "secret",
			S3Bucket:            "b",
		}, "cloudinary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, backend, err := NewUploader(context.Background(), &tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, backend)
			if tt.want == "none" {
				assert.Nil(t, up)
			} else {
				assert.NotNil(t, up)
			}
		})
	}
}
