// Package store persists AED records and user accounts.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound means no record matched; invalid ids are reported the same way.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique key (user email) already exists.
	ErrDuplicate = errors.New("duplicate key")
)

// AEDStore is the Record Store. Every read and Replace act on non-deleted
// records only.
type AEDStore interface {
	Insert(ctx context.Context, aed *models.AED) error
	// List returns non-deleted records, most recently created first.
	List(ctx context.Context) ([]models.AED, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AED, error)
	// Replace overwrites a non-deleted record, keeping its id.
	Replace(ctx context.Context, aed *models.AED) error
	// SoftDelete flags any existing record, deleted or not.
	SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) error
	// Nearby returns non-deleted records within radiusMeters, nearest first.
	Nearby(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyAED, error)
}

// UserStore is the Credential Store.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}
