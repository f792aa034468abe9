package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const aedCollection = "aeds"

var notDeleted = bson.M{"isDeleted": bson.M{"$ne": true}}

type MongoAEDStore struct {
	col *mongo.Collection
}

func NewMongoAEDStore(db *mongo.Database) *MongoAEDStore {
	return &MongoAEDStore{col: db.Collection(aedCollection)}
}

// EnsureIndexes creates the 2dsphere index $geoNear needs and the listing index.
func (s *MongoAEDStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("idx_location_2dsphere"),
		},
		{
			Keys: bson.D{
				{Key: "isDeleted", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_deleted_created"),
		},
	}
	if _, err := s.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create aed indexes: %w", err)
	}
	return nil
}

func (s *MongoAEDStore) Insert(ctx context.Context, aed *models.AED) error {
	if aed.ID.IsZero() {
		aed.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, aed); err != nil {
		return fmt.Errorf("insert aed: %w", err)
	}
	return nil
}

func (s *MongoAEDStore) List(ctx context.Context) ([]models.AED, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := s.col.Find(ctx, notDeleted, opts)
	if err != nil {
		return nil, fmt.Errorf("list aeds: %w", err)
	}
	defer cursor.Close(ctx)

	aeds := []models.AED{}
	if err := cursor.All(ctx, &aeds); err != nil {
		return nil, fmt.Errorf("decode aeds: %w", err)
	}
	return aeds, nil
}

func (s *MongoAEDStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AED, error) {
	filter := bson.M{"_id": id, "isDeleted": bson.M{"$ne": true}}

	var aed models.AED
	err := s.col.FindOne(ctx, filter).Decode(&aed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find aed %s: %w", id.Hex(), err)
	}
	return &aed, nil
}

func (s *MongoAEDStore) Replace(ctx context.Context, aed *models.AED) error {
	filter := bson.M{"_id": aed.ID, "isDeleted": bson.M{"$ne": true}}

	res, err := s.col.ReplaceOne(ctx, filter, aed)
	if err != nil {
		return fmt.Errorf("replace aed %s: %w", aed.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoAEDStore) SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"isDeleted": true,
		"deletedAt": at,
		"updatedAt": at,
	}}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("soft delete aed %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoAEDStore) Nearby(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyAED, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: bson.D{
				{Key: "type", Value: models.GeoPointType},
				{Key: "coordinates", Value: bson.A{lon, lat}},
			}},
			{Key: "key", Value: "location"},
			{Key: "distanceField", Value: "distance"},
			{Key: "maxDistance", Value: radiusMeters},
			{Key: "query", Value: notDeleted},
			{Key: "spherical", Value: true},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("geo near: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.NearbyAED{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode nearby aeds: %w", err)
	}
	return results, nil
}
