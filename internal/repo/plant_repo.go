package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/verdant-labs/plantdex/internal/model"
	"github.com/verdant-labs/plantdex/internal/pkg/dbutil"
	appErr "github.com/verdant-labs/plantdex/internal/pkg/errors"
)

type PlantRepo struct {
	db *sql.DB
}

func NewPlantRepo(db *sql.DB) *PlantRepo {
	return &PlantRepo{db: db}
}

func (r *PlantRepo) Create(ctx context.Context, plant *model.Plant) error {
	sqlStr := `
		INSERT INTO plants (name, scientific_name, last_watered, notes)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	args := []interface{}{plant.Name, plant.ScientificName, plant.LastWatered, plant.Notes}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&plant.ID)
}

func (r *PlantRepo) GetByID(ctx context.Context, id int64) (*model.Plant, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("plants", where, plantColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var plant model.Plant
	err = r.db.QueryRowContext(ctx, sqlStr, args...).
		Scan(&plant.ID, &plant.Name, &plant.ScientificName, &plant.LastWatered, &plant.Notes)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

func (r *PlantRepo) List(ctx context.Context) ([]model.Plant, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("plants", where, plantColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlants(rows)
}

func (r *PlantRepo) Update(ctx context.Context, plant *model.Plant) error {
	where := map[string]interface{}{"id": plant.ID}
	update := map[string]interface{}{
		"name":            plant.Name,
		"scientific_name": plant.ScientificName,
		"last_watered":    plant.LastWatered,
		"notes":           plant.Notes,
	}
	sqlStr, args, err := builder.BuildUpdate("plants", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// Delete removes the plant and its association rows in one transaction.
func (r *PlantRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	linkSQL, linkArgs := dbutil.Finalize(`DELETE FROM plant_tags WHERE plant_id = ?`, []interface{}{id})
	if _, err := tx.ExecContext(ctx, linkSQL, linkArgs...); err != nil {
		return err
	}
	plantSQL, plantArgs := dbutil.Finalize(`DELETE FROM plants WHERE id = ?`, []interface{}{id})
	result, err := tx.ExecContext(ctx, plantSQL, plantArgs...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return tx.Commit()
}

var plantColumns = []string{"id", "name", "scientific_name", "last_watered", "notes"}

func scanPlants(rows *sql.Rows) ([]model.Plant, error) {
	plants := make([]model.Plant, 0)
	for rows.Next() {
		var plant model.Plant
		if err := rows.Scan(&plant.ID, &plant.Name, &plant.ScientificName, &plant.LastWatered, &plant.Notes); err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}
	return plants, rows.Err()
}
