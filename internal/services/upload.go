package services

import (
	"context"
	"io"

	appconfig "github.com/AnshRaj112/aed-backend/internal/config"
)

// ImageFolder is where relayed AED images are stored.
const ImageFolder = "aed_images"

// ImageFile is an image submitted alongside an AED form.
type ImageFile struct {
	Body     io.Reader
	Filename string
}

// Uploader relays an image to object storage and returns its durable URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}

// NewUploader picks the relay named by UPLOAD_BACKEND. "auto" prefers
// Cloudinary, then S3. A nil Uploader with a nil error means uploads are off.
func NewUploader(ctx context.Context, cfg *appconfig.Config) (Uploader, string, error) {
	backend := cfg.UploadBackend
	if backend == "auto" {
		switch {
		case cfg.HasCloudinary():
			backend = "cloudinary"
		case cfg.S3Bucket != "":
			backend = "s3"
		default:
			backend = "none"
		}
	}

	switch backend {
	case "cloudinary":
		u, err := NewCloudinaryUploader(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, backend, err
		}
		return u, backend, nil
	case "s3":
		u, err := NewS3Uploader(ctx, cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			return nil, backend, err
		}
		return u, backend, nil
	default:
		return nil, "none", nil
	}
}
