package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/verdant-labs/plantdex/internal/filestore"
	"github.com/verdant-labs/plantdex/internal/handler"
	"github.com/verdant-labs/plantdex/internal/model"
	appErr "github.com/verdant-labs/plantdex/internal/pkg/errors"
	"github.com/verdant-labs/plantdex/internal/service"
)

type memPlantRepo struct {
	mu     sync.Mutex
	nextID int64
	plants map[int64]model.Plant
}

func newMemPlantRepo() *memPlantRepo {
	return &memPlantRepo{plants: make(map[int64]model.Plant)}
}

func (r *memPlantRepo) Create(ctx context.Context, plant *model.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	plant.ID = r.nextID
	r.plants[plant.ID] = *plant
	return nil
}

func (r *memPlantRepo) GetByID(ctx context.Context, id int64) (*model.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plant, ok := r.plants[id]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &plant, nil
}

func (r *memPlantRepo) List(ctx context.Context) ([]model.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Plant, 0, len(r.plants))
	for id := int64(1); id <= r.nextID; id++ {
		if plant, ok := r.plants[id]; ok {
			out = append(out, plant)
		}
	}
	return out, nil
}

func (r *memPlantRepo) Update(ctx context.Context, plant *model.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[plant.ID]; !ok {
		return appErr.ErrNotFound
	}
	r.plants[plant.ID] = *plant
	return nil
}

func (r *memPlantRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[id]; !ok {
		return appErr.ErrNotFound
	}
	delete(r.plants, id)
	return nil
}

type memTagRepo struct {
	mu     sync.Mutex
	nextID int64
	tags   map[int64]model.Tag
}

func newMemTagRepo() *memTagRepo {
	return &memTagRepo{tags: make(map[int64]model.Tag)}
}

func (r *memTagRepo) Create(ctx context.Context, tag *model.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tag.ID = r.nextID
	r.tags[tag.ID] = *tag
	return nil
}

func (r *memTagRepo) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tag, ok := r.tags[id]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &tag, nil
}

func (r *memTagRepo) List(ctx context.Context) ([]model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Tag, 0, len(r.tags))
	for id := int64(1); id <= r.nextID; id++ {
		if tag, ok := r.tags[id]; ok {
			out = append(out, tag)
		}
	}
	return out, nil
}

type memLinkRepo struct {
	mu     sync.Mutex
	plants *memPlantRepo
	tags   *memTagRepo
	links  map[model.PlantTag]struct{}
}

func newMemLinkRepo(plants *memPlantRepo, tags *memTagRepo) *memLinkRepo {
	return &memLinkRepo{plants: plants, tags: tags, links: make(map[model.PlantTag]struct{})}
}

func (r *memLinkRepo) Link(ctx context.Context, plantID, tagID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[model.PlantTag{PlantID: plantID, TagID: tagID}] = struct{}{}
	return nil
}

func (r *memLinkRepo) ListTagsByPlant(ctx context.Context, plantID int64) ([]model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Tag{}
	for link := range r.links {
		if link.PlantID != plantID {
			continue
		}
		if tag, err := r.tags.GetByID(ctx, link.TagID); err == nil {
			out = append(out, *tag)
		}
	}
	return out, nil
}

func (r *memLinkRepo) ListPlantsByTag(ctx context.Context, tagID int64) ([]model.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Plant{}
	for link := range r.links {
		if link.TagID != tagID {
			continue
		}
		if plant, err := r.plants.GetByID(ctx, link.PlantID); err == nil {
			out = append(out, *plant)
		}
	}
	return out, nil
}

func (r *memLinkRepo) ListTagsByPlantIDs(ctx context.Context, plantIDs []int64) (map[int64][]model.Tag, error) {
	out := make(map[int64][]model.Tag)
	for _, id := range plantIDs {
		tags, err := r.ListTagsByPlant(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			out[id] = tags
		}
	}
	return out, nil
}

type memAssetRepo struct {
	mu     sync.Mutex
	nextID int64
	assets []model.Asset
}

func newMemAssetRepo() *memAssetRepo {
	return &memAssetRepo{}
}

func (r *memAssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	asset.ID = r.nextID
	r.assets = append(r.assets, *asset)
	return nil
}

func (r *memAssetRepo) List(ctx context.Context) ([]model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Asset{}, r.assets...), nil
}

type memObjectStore struct {
	mu      sync.Mutex
	baseURL string
	saved   map[string][]byte
	err     error
}

func newMemObjectStore(baseURL string) *memObjectStore {
	return &memObjectStore{baseURL: baseURL, saved: make(map[string][]byte)}
}

func (s *memObjectStore) BaseURL() string {
	return s.baseURL
}

func (s *memObjectStore) Save(ctx context.Context, key string, r filestore.ReadSeekCloser, size int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.saved[key] = buf
	return nil
}

func (s *memObjectStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

type fixture struct {
	router http.Handler
	plants *memPlantRepo
	tags   *memTagRepo
	links  *memLinkRepo
	assets *memAssetRepo
	store  *memObjectStore
}

func setupRouter(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	plants := newMemPlantRepo()
	tags := newMemTagRepo()
	links := newMemLinkRepo(plants, tags)
	assets := newMemAssetRepo()
	store := newMemObjectStore("https://cdn.example.com/plants")

	plantService := service.NewPlantService(plants, tags, links)
	tagService := service.NewTagService(tags, links)
	assetService := service.NewAssetService(assets, store, time.Second)

	router := handler.NewRouter(handler.RouterDeps{
		Plants: handler.NewPlantHandler(plantService),
		Tags:   handler.NewTagHandler(tagService),
		Assets: handler.NewAssetHandler(assetService),
		Upload: handler.NewUploadHandler(assetService),
	})

	return &fixture{
		router: router,
		plants: plants,
		tags:   tags,
		links:  links,
		assets: assets,
		store:  store,
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), out))
}
