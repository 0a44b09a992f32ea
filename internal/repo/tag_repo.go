package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/verdant-labs/plantdex/internal/model"
	"github.com/verdant-labs/plantdex/internal/pkg/dbutil"
	appErr "github.com/verdant-labs/plantdex/internal/pkg/errors"
)

type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

func (r *TagRepo) Create(ctx context.Context, tag *model.Tag) error {
	sqlStr := `INSERT INTO tags (name) VALUES (?) RETURNING id`
	sqlStr, args := dbutil.Finalize(sqlStr, []interface{}{tag.Name})
	return r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&tag.ID)
}

func (r *TagRepo) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("tags", where, []string{"id", "name"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var tag model.Tag
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&tag.ID, &tag.Name)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepo) List(ctx context.Context) ([]model.Tag, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("tags", where, []string{"id", "name"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
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
