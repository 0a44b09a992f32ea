package service

import (
	"context"

	"github.com/verdant-labs/plantdex/internal/model"
)

type TagService struct {
	tags  TagRepo
	links PlantTagRepo
}

func NewTagService(tags TagRepo, links PlantTagRepo) *TagService {
	return &TagService{tags: tags, links: links}
}

func (s *TagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{Name: name}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.tags.List(ctx)
}

// Get returns the tag together with the plants linked to it, the inverse
// view of the same association rows Plant.Tags is built from.
func (s *TagService) Get(ctx context.Context, id int64) (*model.TagWithPlants, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plants, err := s.links.ListPlantsByTag(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.TagWithPlants{Tag: *tag, TaggedPlants: plants}, nil
}
