package repo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/verdant-labs/plantdex/internal/model"
	"github.com/verdant-labs/plantdex/internal/pkg/dbutil"
)

// PlantTagRepo owns the plant/tag association table. Each link is a single
// row insert, so both directions of the relation become visible atomically;
// the bidirectional view is always derived by query.
type PlantTagRepo struct {
	db *sql.DB
}

func NewPlantTagRepo(db *sql.DB) *PlantTagRepo {
	return &PlantTagRepo{db: db}
}

// Link inserts the association row. Re-linking an already-linked pair is a
// no-op: the (plant_id, tag_id) primary key absorbs duplicates, including
// concurrent ones.
func (r *PlantTagRepo) Link(ctx context.Context, plantID, tagID int64) error {
	sqlStr := `
		INSERT INTO plant_tags (plant_id, tag_id)
		VALUES (?, ?)
		ON CONFLICT (plant_id, tag_id) DO NOTHING
	`
	sqlStr, args := dbutil.Finalize(sqlStr, []interface{}{plantID, tagID})
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PlantTagRepo) ListTagsByPlant(ctx context.Context, plantID int64) ([]model.Tag, error) {
	sqlStr := `
		SELECT t.id, t.name
		FROM tags t
		JOIN plant_tags pt ON pt.tag_id = t.id
		WHERE pt.plant_id = ?
		ORDER BY t.id
	`
	sqlStr, args := dbutil.Finalize(sqlStr, []interface{}{plantID})
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tags := make([]model.Tag, 0)
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *PlantTagRepo) ListPlantsByTag(ctx context.Context, tagID int64) ([]model.Plant, error) {
	sqlStr := `
		SELECT p.id, p.name, p.scientific_name, p.last_watered, p.notes
		FROM plants p
		JOIN plant_tags pt ON pt.plant_id = p.id
		WHERE pt.tag_id = ?
		ORDER BY p.id
	`
	sqlStr, args := dbutil.Finalize(sqlStr, []interface{}{tagID})
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlants(rows)
}

// ListTagsByPlantIDs resolves tags for a batch of plants in one query.
func (r *PlantTagRepo) ListTagsByPlantIDs(ctx context.Context, plantIDs []int64) (map[int64][]model.Tag, error) {
	result := make(map[int64][]model.Tag)
	if len(plantIDs) == 0 {
		return result, nil
	}
	sqlStr := `
		SELECT pt.plant_id, t.id, t.name
		FROM plant_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.plant_id = ANY(?)
		ORDER BY pt.plant_id, t.id
	`
	sqlStr, args := dbutil.Finalize(sqlStr, []interface{}{pq.Array(plantIDs)})
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var plantID int64
		var tag model.Tag
		if err := rows.Scan(&plantID, &tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		result[plantID] = append(result[plantID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
