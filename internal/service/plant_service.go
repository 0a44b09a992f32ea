package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/verdant-labs/plantdex/internal/model"
)

type PlantRepo interface {
	Create(ctx context.Context, plant *model.Plant) error
	GetByID(ctx context.Context, id int64) (*model.Plant, error)
	List(ctx context.Context) ([]model.Plant, error)
	Update(ctx context.Context, plant *model.Plant) error
	Delete(ctx context.Context, id int64) error
}

type TagRepo interface {
	Create(ctx context.Context, tag *model.Tag) error
	GetByID(ctx context.Context, id int64) (*model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
}

type PlantTagRepo interface {
	Link(ctx context.Context, plantID, tagID int64) error
	ListTagsByPlant(ctx context.Context, plantID int64) ([]model.Tag, error)
	ListPlantsByTag(ctx context.Context, tagID int64) ([]model.Plant, error)
	ListTagsByPlantIDs(ctx context.Context, plantIDs []int64) (map[int64][]model.Tag, error)
}

type PlantService struct {
	plants PlantRepo
	tags   TagRepo
	links  PlantTagRepo
	md     goldmark.Markdown
}

func NewPlantService(plants PlantRepo, tags TagRepo, links PlantTagRepo) *PlantService {
	return &PlantService{
		plants: plants,
		tags:   tags,
		links:  links,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// PlantUpdate carries the partially-supplied update fields; nil means "leave
// unchanged".
type PlantUpdate struct {
	Name           *string
	ScientificName *string
	LastWatered    *string
	Notes          *string
}

func (s *PlantService) Create(ctx context.Context, name, scientificName string, lastWatered, notes *string) (*model.PlantWithTags, error) {
	plant := &model.Plant{
		Name:           name,
		ScientificName: scientificName,
		LastWatered:    model.DefaultLastWatered,
		Notes:          "",
	}
	if lastWatered != nil {
		plant.LastWatered = *lastWatered
	}
	if notes != nil {
		plant.Notes = *notes
	}
	if err := s.plants.Create(ctx, plant); err != nil {
		return nil, err
	}
	return &model.PlantWithTags{Plant: *plant, Tags: []model.Tag{}}, nil
}

func (s *PlantService) Get(ctx context.Context, id int64) (*model.PlantWithTags, error) {
	plant, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.links.ListTagsByPlant(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.PlantWithTags{Plant: *plant, Tags: tags}, nil
}

func (s *PlantService) List(ctx context.Context) ([]model.PlantWithTags, error) {
	plants, err := s.plants.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(plants))
	for _, plant := range plants {
		ids = append(ids, plant.ID)
	}
	tagsByPlant, err := s.links.ListTagsByPlantIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make([]model.PlantWithTags, 0, len(plants))
	for _, plant := range plants {
		tags := tagsByPlant[plant.ID]
		if tags == nil {
			tags = []model.Tag{}
		}
		result = append(result, model.PlantWithTags{Plant: plant, Tags: tags})
	}
	return result, nil
}

func (s *PlantService) Update(ctx context.Context, id int64, upd PlantUpdate) (*model.Plant, error) {
	plant, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		plant.Name = *upd.Name
	}
	if upd.ScientificName != nil {
		plant.ScientificName = *upd.ScientificName
	}
	if upd.LastWatered != nil {
		plant.LastWatered = *upd.LastWatered
	}
	if upd.Notes != nil {
		plant.Notes = *upd.Notes
	}
	if err := s.plants.Update(ctx, plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// Delete returns the removed plant, tags included, matching the original
// delete response.
func (s *PlantService) Delete(ctx context.Context, id int64) (*model.PlantWithTags, error) {
	plant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.plants.Delete(ctx, id); err != nil {
		return nil, err
	}
	return plant, nil
}

// AddTag links an existing tag to an existing plant. The link is one
// association-row insert, so both sides become visible together; re-linking
// an already-linked pair is a no-op.
func (s *PlantService) AddTag(ctx context.Context, plantID, tagID int64) (*model.PlantWithTags, error) {
	if _, err := s.plants.GetByID(ctx, plantID); err != nil {
		return nil, fmt.Errorf("plant: %w", err)
	}
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	if err := s.links.Link(ctx, plantID, tagID); err != nil {
		return nil, err
	}
	return s.Get(ctx, plantID)
}

// RenderNotes renders the plant's notes field (markdown) to HTML.
func (s *PlantService) RenderNotes(ctx context.Context, id int64) (string, error) {
	plant, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(plant.Notes), &buf); err != nil {
		return "", fmt.Errorf("render notes: %w", err)
	}
	return buf.String(), nil
}
