package model

// DefaultLastWatered is stored when a plant is created without a
// last_watered value. The field is free text, not a timestamp.
const DefaultLastWatered = "Unknown"

type Plant struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	LastWatered    string `json:"last_watered"`
	Notes          string `json:"notes"`
}

type PlantWithTags struct {
	Plant
	Tags []Tag `json:"tags"`
}
