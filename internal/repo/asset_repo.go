package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/verdant-labs/plantdex/internal/model"
	"github.com/verdant-labs/plantdex/internal/pkg/dbutil"
	appErr "github.com/verdant-labs/plantdex/internal/pkg/errors"
)

type AssetRepo struct {
	db *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

func (r *AssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	sqlStr := `
		INSERT INTO assets (base_url, salt, extension, width, height, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	args := []interface{}{
		asset.BaseURL,
		asset.Salt,
		asset.Extension,
		asset.Width,
		asset.Height,
		asset.CreatedAt,
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&asset.ID)
	if err != nil && dbutil.IsUniqueViolation(err) {
		// salt collision, 36^16 keyspace makes this practically unreachable
		return appErr.ErrConflict
	}
	return err
}

func (r *AssetRepo) List(ctx context.Context) ([]model.Asset, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	columns := []string{"id", "base_url", "salt", "extension", "width", "height", "created_at"}
	sqlStr, args, err := builder.BuildSelect("assets", where, columns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	assets := make([]model.Asset, 0)
	for rows.Next() {
		var asset model.Asset
		if err := rows.Scan(&asset.ID, &asset.BaseURL, &asset.Salt, &asset.Extension, &asset.Width, &asset.Height, &asset.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}
