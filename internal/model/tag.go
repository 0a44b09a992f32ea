package model

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TagWithPlants struct {
	Tag
	TaggedPlants []Plant `json:"tagged_plants"`
}
