package services

import (
	"errors"

	"github.com/AnshRaj112/aed-backend/internal/store"
	"github.com/AnshRaj112/aed-backend/pkg/utils"
)

var (
	// ErrNotFound covers unknown ids, malformed ids and soft-deleted records.
	ErrNotFound = store.ErrNotFound

	ErrDuplicateEmail     = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNoToken            = errors.New("Unauthorized: No token provided")
	ErrInvalidToken       = errors.New("Unauthorized: Invalid token")
	ErrUploadUnavailable  = errors.New("file upload service not available")

	ErrInvalidLocation = &utils.ValidationError{
		Field:   "location",
		Message: "Invalid location format",
	}
	ErrMissingCoordinates = &utils.ValidationError{
		Field:   "latitude",
		Message: "Latitude and longitude are required.",
	}
)
