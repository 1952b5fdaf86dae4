package services

import (
	apperrors "refdata/internal/errors"
	"refdata/internal/models"
	"refdata/internal/pagination"
	"refdata/internal/repositories"
)

// listingService handles listing-related business logic.
type listingService struct {
	listings  repositories.ListingRepository
	assets    repositories.AssetRepository
	exchanges repositories.ExchangeRepository
}

// NewListingService creates a new ListingServicer.
func NewListingService(
	listings repositories.ListingRepository,
	assets repositories.AssetRepository,
	exchanges repositories.ExchangeRepository,
) ListingServicer {
	return &listingService{listings: listings, assets: assets, exchanges: exchanges}
}

// CreateListing creates a new listing after checking that the referenced
// asset and exchange exist, so callers get a 404 instead of a foreign-key
// violation.
func (s *listingService) CreateListing(assetID, exchangeID uint, ticker, currency string) (*models.Listing, error) {
	listing := &models.Listing{
		AssetID:    assetID,
		ExchangeID: exchangeID,
		Ticker:     ticker,
		Currency:   currency,
		IsActive:   true,
	}
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	asset, err := s.assets.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperrors.ErrAssetNotFound
	}

	exchange, err := s.exchanges.GetByID(exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange == nil {
		return nil, apperrors.ErrExchangeNotFound
	}

	return s.listings.Create(listing)
}

// GetListingByID returns a listing by its ID.
func (s *listingService) GetListingByID(id uint) (*models.Listing, error) {
	listing, err := s.listings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperrors.ErrListingNotFound
	}
	return listing, nil
}

// GetListingsByAsset returns all listings of one asset.
func (s *listingService) GetListingsByAsset(assetID uint) ([]models.Listing, error) {
	asset, err := s.assets.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperrors.ErrAssetNotFound
	}
	return s.listings.GetByAssetID(assetID)
}

// ListListings returns a paginated list of listings.
func (s *listingService) ListListings(page pagination.PageRequest) (*pagination.PageResponse[models.Listing], error) {
	page.Defaults()

	listings, total, err := s.listings.Page(page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(listings, page.Page, page.PageSize, total)
	return &result, nil
}
