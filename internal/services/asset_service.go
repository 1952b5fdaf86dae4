package services

import (
	apperrors "refdata/internal/errors"
	"refdata/internal/models"
	"refdata/internal/pagination"
	"refdata/internal/repositories"
)

// assetService handles asset-related business logic.
type assetService struct {
	assets repositories.AssetRepository
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(assets repositories.AssetRepository) AssetServicer {
	return &assetService{assets: assets}
}

// CreateAsset creates a new asset record.
func (s *assetService) CreateAsset(name string, assetClass models.AssetClass, isin *string) (*models.Asset, error) {
	asset := &models.Asset{
		Name:       name,
		AssetClass: assetClass,
		ISIN:       isin,
		IsActive:   true,
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	return s.assets.Create(asset)
}

// GetAssetByID returns an asset by its ID.
func (s *assetService) GetAssetByID(id uint) (*models.Asset, error) {
	asset, err := s.assets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperrors.ErrAssetNotFound
	}
	return asset, nil
}

// ListAssets returns a paginated list of assets.
func (s *assetService) ListAssets(page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	assets, total, err := s.assets.Page(page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, total)
	return &result, nil
}
