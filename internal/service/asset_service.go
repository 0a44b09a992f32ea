package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/verdant-labs/plantdex/internal/filestore"
	"github.com/verdant-labs/plantdex/internal/imaging"
	"github.com/verdant-labs/plantdex/internal/model"
	appErr "github.com/verdant-labs/plantdex/internal/pkg/errors"
)

// ObjectStore is the slice of filestore.Store the asset pipeline needs.
type ObjectStore interface {
	BaseURL() string
	Save(ctx context.Context, key string, r filestore.ReadSeekCloser, size int64) error
}

type AssetRepo interface {
	Create(ctx context.Context, asset *model.Asset) error
	List(ctx context.Context) ([]model.Asset, error)
}

type AssetService struct {
	assets        AssetRepo
	store         ObjectStore
	uploadTimeout time.Duration
}

func NewAssetService(assets AssetRepo, store ObjectStore, uploadTimeout time.Duration) *AssetService {
	if uploadTimeout <= 0 {
		uploadTimeout = 30 * time.Second
	}
	return &AssetService{assets: assets, store: store, uploadTimeout: uploadTimeout}
}

// CreateFromDataURI runs the full pipeline: decode and validate the payload,
// upload the bytes under a fresh salt, then persist the asset record. Any
// failure aborts the call before the record is written, so a persisted asset
// always has a stored object behind it.
func (s *AssetService) CreateFromDataURI(ctx context.Context, dataURI string) (*model.Asset, error) {
	if strings.TrimSpace(dataURI) == "" {
		return nil, fmt.Errorf("%w: image_data is required", appErr.ErrInvalid)
	}
	decoded, err := imaging.Decode(dataURI)
	if err != nil {
		return nil, err
	}
	salt, err := newSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	key := salt + "." + decoded.Extension

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()
	body := nopReadSeekCloser{bytes.NewReader(decoded.Bytes)}
	if err := s.store.Save(uploadCtx, key, body, int64(len(decoded.Bytes))); err != nil {
		return nil, fmt.Errorf("%w: upload %s: %v", appErr.ErrStorageUnavailable, key, err)
	}

	asset := &model.Asset{
		BaseURL:   s.store.BaseURL(),
		Salt:      salt,
		Extension: decoded.Extension,
		Width:     decoded.Width,
		Height:    decoded.Height,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) List(ctx context.Context) ([]model.Asset, error) {
	return s.assets.List(ctx)
}

type nopReadSeekCloser struct {
	*bytes.Reader
}

func (nopReadSeekCloser) Close() error { return nil }
