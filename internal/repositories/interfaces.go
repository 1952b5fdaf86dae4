// Package repositories defines storage contracts for the reference-data
// entities and their GORM-backed implementations. Lookups return (nil, nil)
// when no row matches; callers decide whether absence is an error.
package repositories

import (
	"refdata/internal/models"
	"refdata/internal/pagination"
)

// AssetRepository is the storage contract for assets. Upsert is keyed by
// ISIN when present, otherwise by the (name, asset_class) pair.
type AssetRepository interface {
	Create(asset *models.Asset) (*models.Asset, error)
	GetByID(id uint) (*models.Asset, error)
	ListAll() ([]models.Asset, error)
	Page(page pagination.PageRequest) ([]models.Asset, int64, error)
	Upsert(asset *models.Asset) (*models.Asset, error)
}

// ExchangeRepository is the storage contract for exchanges. Upsert is keyed
// by MIC code.
type ExchangeRepository interface {
	Create(exchange *models.Exchange) (*models.Exchange, error)
	GetByID(id uint) (*models.Exchange, error)
	GetByMICCode(code string) (*models.Exchange, error)
	ListAll() ([]models.Exchange, error)
	Page(page pagination.PageRequest) ([]models.Exchange, int64, error)
	Upsert(exchange *models.Exchange) (*models.Exchange, error)
}

// ListingRepository is the storage contract for listings. Upsert is keyed
// by the (ticker, exchange_id) pair.
type ListingRepository interface {
	Create(listing *models.Listing) (*models.Listing, error)
	GetByID(id uint) (*models.Listing, error)
	GetByAssetID(assetID uint) ([]models.Listing, error)
	ListAll() ([]models.Listing, error)
	Page(page pagination.PageRequest) ([]models.Listing, int64, error)
	Upsert(listing *models.Listing) (*models.Listing, error)
}
