package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"github.com/AnshRaj112/aed-backend/pkg/geo"
	"github.com/dhconnelly/rtreego"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	tolerance   = 0.000001
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// indexedAED is the R-tree entry for one located record. Points are
// (longitude, latitude), the same order as GeoJSON.
type indexedAED struct {
	id       primitive.ObjectID
	lat, lon float64
	rect     *rtreego.Rect
}

func (e *indexedAED) Bounds() *rtreego.Rect {
	return e.rect
}

// MemoryAEDStore keeps records in process and answers Nearby from an R-tree.
// It backs tests and STORE_BACKEND=memory.
type MemoryAEDStore struct {
	mu      sync.RWMutex
	records map[primitive.ObjectID]*models.AED
	tree    *rtreego.Rtree
	indexed map[primitive.ObjectID]*indexedAED
}

func NewMemoryAEDStore() *MemoryAEDStore {
	return &MemoryAEDStore{
		records: make(map[primitive.ObjectID]*models.AED),
		tree:    rtreego.NewTree(dimensions, minChildren, maxChildren),
		indexed: make(map[primitive.ObjectID]*indexedAED),
	}
}

func (s *MemoryAEDStore) Insert(_ context.Context, aed *models.AED) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if aed.ID.IsZero() {
		aed.ID = primitive.NewObjectID()
	}
	s.records[aed.ID] = cloneAED(aed)
	s.reindex(aed)
	return nil
}

func (s *MemoryAEDStore) List(_ context.Context) ([]models.AED, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AED, 0, len(s.records))
	for _, rec := range s.records {
		if rec.IsDeleted {
			continue
		}
		out = append(out, *cloneAED(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (s *MemoryAEDStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.AED, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.IsDeleted {
		return nil, ErrNotFound
	}
	return cloneAED(rec), nil
}

func (s *MemoryAEDStore) Replace(_ context.Context, aed *models.AED) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[aed.ID]
	if !ok || rec.IsDeleted {
		return ErrNotFound
	}
	s.records[aed.ID] = cloneAED(aed)
	s.reindex(aed)
	return nil
}

func (s *MemoryAEDStore) SoftDelete(_ context.Context, id primitive.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	deletedAt := at
	rec.IsDeleted = true
	rec.DeletedAt = &deletedAt
	rec.UpdatedAt = at
	s.unindex(id)
	return nil
}

func (s *MemoryAEDStore) Nearby(_ context.Context, lat, lon, radiusMeters float64) ([]models.NearbyAED, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []*indexedAED
	if box, ok := searchRect(lat, lon, radiusMeters); ok {
		for _, item := range s.tree.SearchIntersect(box) {
			candidates = append(candidates, item.(*indexedAED))
		}
	} else {
		// Box wraps a pole or the antimeridian: scan everything.
		for _, e := range s.indexed {
			candidates = append(candidates, e)
		}
	}

	results := make([]models.NearbyAED, 0, len(candidates))
	for _, c := range candidates {
		rec := s.records[c.id]
		if rec == nil || rec.IsDeleted {
			continue
		}
		d := geo.Distance(lat, lon, c.lat, c.lon)
		if d > radiusMeters {
			continue
		}
		results = append(results, models.NearbyAED{AED: *cloneAED(rec), Distance: d})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	return results, nil
}

func searchRect(lat, lon, radiusMeters float64) (*rtreego.Rect, bool) {
	minLat, minLon, maxLat, maxLon, ok := geo.BoundingBox(lat, lon, radiusMeters)
	if !ok {
		return nil, false
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{minLon, minLat},
		[]float64{maxLon - minLon, maxLat - minLat},
	)
	if err != nil {
		return nil, false
	}
	return rect, true
}

// reindex must be called with mu held.
func (s *MemoryAEDStore) reindex(aed *models.AED) {
	s.unindex(aed.ID)
	if aed.IsDeleted || aed.Location == nil || len(aed.Location.Coordinates) != 2 {
		return
	}
	lon, lat := aed.Location.Longitude(), aed.Location.Latitude()
	e := &indexedAED{
		id:   aed.ID,
		lat:  lat,
		lon:  lon,
		rect: rtreego.Point{lon, lat}.ToRect(tolerance),
	}
	s.tree.Insert(e)
	s.indexed[aed.ID] = e
}

// unindex must be called with mu held.
func (s *MemoryAEDStore) unindex(id primitive.ObjectID) {
	if e, ok := s.indexed[id]; ok {
		s.tree.Delete(e)
		delete(s.indexed, id)
	}
}

func cloneAED(a *models.AED) *models.AED {
	c := *a
	if a.EmergencySupplies != nil {
		c.EmergencySupplies = make([]string, len(a.EmergencySupplies))
		copy(c.EmergencySupplies, a.EmergencySupplies)
	}
	if a.Location != nil {
		loc := *a.Location
		loc.Coordinates = append([]float64(nil), a.Location.Coordinates...)
		c.Location = &loc
	}
	if a.DeletedAt != nil {
		t := *a.DeletedAt
		c.DeletedAt = &t
	}
	return &c
}
