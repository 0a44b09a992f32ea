package model

// PlantTag is one row of the plant/tag association table. Both directions of
// the relation are derived from it by query; there is no second copy to keep
// in sync.
type PlantTag struct {
	PlantID int64 `json:"plant_id"`
	TagID   int64 `json:"tag_id"`
}
