package services

import (
	"refdata/internal/models"
	"refdata/internal/pagination"
)

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(name string, assetClass models.AssetClass, isin *string) (*models.Asset, error)
	GetAssetByID(id uint) (*models.Asset, error)
	ListAssets(page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
}

// ExchangeServicer defines the contract for exchange-related business logic.
type ExchangeServicer interface {
	CreateExchange(name, micCode, currency string) (*models.Exchange, error)
	GetExchangeByID(id uint) (*models.Exchange, error)
	ListExchanges(page pagination.PageRequest) (*pagination.PageResponse[models.Exchange], error)
}

// ListingServicer defines the contract for listing-related business logic.
type ListingServicer interface {
	CreateListing(assetID, exchangeID uint, ticker, currency string) (*models.Listing, error)
	GetListingByID(id uint) (*models.Listing, error)
	GetListingsByAsset(assetID uint) ([]models.Listing, error)
	ListListings(page pagination.PageRequest) (*pagination.PageResponse[models.Listing], error)
}

// ExchangeSeed is one exchange record to seed into the store.
type ExchangeSeed struct {
	Name     string `json:"name"`
	MICCode  string `json:"mic_code"`
	Currency string `json:"currency"`
}

// SyncServicer defines the contract for the reference-data sync job.
type SyncServicer interface {
	SeedExchanges(seeds []ExchangeSeed) error
	SyncAssets(tickers []string) error
}
