package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"github.com/AnshRaj112/aed-backend/internal/store"
	"github.com/AnshRaj112/aed-backend/pkg/utils"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NearbyRadiusMeters is the fixed search radius for Nearby.
const NearbyRadiusMeters = 200 * 1000

type AEDOptions struct {
	// UpdateClearsSupplies empties emergencySupplies when an update omits it.
	UpdateClearsSupplies bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// AEDService owns the AED record lifecycle.
type AEDService struct {
	store    store.AEDStore
	uploader Uploader
	opts     AEDOptions
	log      zerolog.Logger
}

// NewAEDService builds the service. uploader may be nil, in which case any
// request carrying an image fails with ErrUploadUnavailable.
func NewAEDService(st store.AEDStore, uploader Uploader, opts AEDOptions, log zerolog.Logger) *AEDService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AEDService{
		store:    st,
		uploader: uploader,
		opts:     opts,
		log:      log.With().Str("component", "aed").Logger(),
	}
}

func (s *AEDService) now() time.Time {
	return s.opts.Now().UTC()
}

func (s *AEDService) Register(ctx context.Context, fields Fields, image *ImageFile) (*models.AED, error) {
	aed := &models.AED{EmergencySupplies: []string{}}
	if err := applyFields(aed, fields); err != nil {
		return nil, err
	}
	if err := utils.RequireField("locationName", aed.LocationName, "locationName is required"); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		aed.AEDImage = url
	}

	now := s.now()
	aed.CreatedAt = now
	aed.UpdatedAt = now
	if err := s.store.Insert(ctx, aed); err != nil {
		return nil, fmt.Errorf("insert aed: %w", err)
	}

	s.log.Info().Str("aed_id", aed.ID.Hex()).Msg("aed registered")
	return aed, nil
}

func (s *AEDService) List(ctx context.Context) ([]models.AED, error) {
	aeds, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list aeds: %w", err)
	}
	return aeds, nil
}

func (s *AEDService) GetByID(ctx context.Context, id string) (*models.AED, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.store.FindByID(ctx, oid)
}

// Update applies a partial set of fields to a live record. Id, creation
// time and delete state are never touched.
func (s *AEDService) Update(ctx context.Context, id string, fields Fields, image *ImageFile) (*models.AED, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	aed, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := applyFields(aed, fields); err != nil {
		return nil, err
	}
	if fields.has("locationName") && strings.TrimSpace(aed.LocationName) == "" {
		return nil, &utils.ValidationError{Field: "locationName", Message: "locationName cannot be empty"}
	}
	if s.opts.UpdateClearsSupplies && !fields.has("emergencySupplies") {
		aed.EmergencySupplies = []string{}
	}
	if aed.EmergencySupplies == nil {
		aed.EmergencySupplies = []string{}
	}

	if image != nil {
		url, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		aed.AEDImage = url
	}

	aed.UpdatedAt = s.now()
	if err := s.store.Replace(ctx, aed); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("replace aed: %w", err)
	}
	return aed, nil
}

// Nearby returns live records within NearbyRadiusMeters, nearest first.
// Nil coordinates mean the caller did not send them.
func (s *AEDService) Nearby(ctx context.Context, lat, lon *float64) ([]models.NearbyAED, error) {
	if lat == nil || lon == nil {
		return nil, ErrMissingCoordinates
	}
	if err := models.ValidateLatLon(*lat, *lon); err != nil {
		return nil, &utils.ValidationError{Field: "latitude", Message: err.Error()}
	}

	results, err := s.store.Nearby(ctx, *lat, *lon, NearbyRadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("nearby aeds: %w", err)
	}
	if results == nil {
		results = []models.NearbyAED{}
	}
	return results, nil
}

// SoftDelete flags the record and stamps deletedAt. Deleting an already
// deleted record succeeds and re-stamps it.
func (s *AEDService) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.store.SoftDelete(ctx, oid, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("soft delete aed: %w", err)
	}
	s.log.Info().Str("aed_id", id).Msg("aed soft-deleted")
	return nil
}

func (s *AEDService) upload(ctx context.Context, image *ImageFile) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadUnavailable
	}
	url, err := s.uploader.Upload(ctx, image.Body, image.Filename)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}
