package service

import (
	"context"
	"errors"
	"sync"

	"github.com/verdant-labs/plantdex/internal/filestore"
	"github.com/verdant-labs/plantdex/internal/model"
	appErr "github.com/verdant-labs/plantdex/internal/pkg/errors"
)

type fakePlantRepo struct {
	mu     sync.Mutex
	nextID int64
	plants map[int64]model.Plant
}

func newFakePlantRepo() *fakePlantRepo {
	return &fakePlantRepo{plants: map[int64]model.Plant{}}
}

func (r *fakePlantRepo) Create(ctx context.Context, plant *model.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	plant.ID = r.nextID
	r.plants[plant.ID] = *plant
	return nil
}

func (r *fakePlantRepo) GetByID(ctx context.Context, id int64) (*model.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plant, ok := r.plants[id]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &plant, nil
}

func (r *fakePlantRepo) List(ctx context.Context) ([]model.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plants := make([]model.Plant, 0, len(r.plants))
	for id := int64(1); id <= r.nextID; id++ {
		if plant, ok := r.plants[id]; ok {
			plants = append(plants, plant)
		}
	}
	return plants, nil
}

func (r *fakePlantRepo) Update(ctx context.Context, plant *model.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[plant.ID]; !ok {
		return appErr.ErrNotFound
	}
	r.plants[plant.ID] = *plant
	return nil
}

func (r *fakePlantRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[id]; !ok {
		return appErr.ErrNotFound
	}
	delete(r.plants, id)
	return nil
}

type fakeTagRepo struct {
	mu     sync.Mutex
	nextID int64
	tags   map[int64]model.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[int64]model.Tag{}}
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *model.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tag.ID = r.nextID
	r.tags[tag.ID] = *tag
	return nil
}

func (r *fakeTagRepo) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tag, ok := r.tags[id]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &tag, nil
}

func (r *fakeTagRepo) List(ctx context.Context) ([]model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tags := make([]model.Tag, 0, len(r.tags))
	for id := int64(1); id <= r.nextID; id++ {
		if tag, ok := r.tags[id]; ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// fakePlantTagRepo mirrors the single-row-insert semantics of the real
// association table, duplicate absorption included.
type fakePlantTagRepo struct {
	mu          sync.Mutex
	tags        *fakeTagRepo
	plantSource *fakePlantRepo
	links       map[model.PlantTag]struct{}
}

func newFakePlantTagRepo(plants *fakePlantRepo, tags *fakeTagRepo) *fakePlantTagRepo {
	return &fakePlantTagRepo{tags: tags, plantSource: plants, links: map[model.PlantTag]struct{}{}}
}

func (r *fakePlantTagRepo) Link(ctx context.Context, plantID, tagID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[model.PlantTag{PlantID: plantID, TagID: tagID}] = struct{}{}
	return nil
}

func (r *fakePlantTagRepo) linkCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.links)
}

func (r *fakePlantTagRepo) ListTagsByPlant(ctx context.Context, plantID int64) ([]model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tags := make([]model.Tag, 0)
	for link := range r.links {
		if link.PlantID != plantID {
			continue
		}
		if tag, ok := r.tags.tags[link.TagID]; ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (r *fakePlantTagRepo) ListPlantsByTag(ctx context.Context, tagID int64) ([]model.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plants := make([]model.Plant, 0)
	for link := range r.links {
		if link.TagID != tagID {
			continue
		}
		if r.plantSource != nil {
			if plant, ok := r.plantSource.plants[link.PlantID]; ok {
				plants = append(plants, plant)
			}
		}
	}
	return plants, nil
}

func (r *fakePlantTagRepo) ListTagsByPlantIDs(ctx context.Context, plantIDs []int64) (map[int64][]model.Tag, error) {
	result := make(map[int64][]model.Tag)
	for _, id := range plantIDs {
		tags, err := r.ListTagsByPlant(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			result[id] = tags
		}
	}
	return result, nil
}

type fakeAssetRepo struct {
	mu     sync.Mutex
	nextID int64
	assets []model.Asset
	failed bool
}

func (r *fakeAssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed {
		return errors.New("insert failed")
	}
	r.nextID++
	asset.ID = r.nextID
	r.assets = append(r.assets, *asset)
	return nil
}

func (r *fakeAssetRepo) List(ctx context.Context) ([]model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Asset(nil), r.assets...), nil
}

type fakeObjectStore struct {
	mu      sync.Mutex
	baseURL string
	saved   map[string][]byte
	err     error
}

func newFakeObjectStore(baseURL string) *fakeObjectStore {
	return &fakeObjectStore{baseURL: baseURL, saved: map[string][]byte{}}
}

func (s *fakeObjectStore) BaseURL() string { return s.baseURL }

func (s *fakeObjectStore) Save(ctx context.Context, key string, r filestore.ReadSeekCloser, size int64) error {
	if s.err != nil {
		return s.err
	}
	buf := make([]byte, size)
	if _, err := r.Read(buf); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[key] = buf
	return nil
}

func (s *fakeObjectStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}
