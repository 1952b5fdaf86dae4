package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "refdata/internal/errors"
	"refdata/internal/models"
	"refdata/internal/pagination"
)

// gormListingRepository is the GORM-backed ListingRepository.
type gormListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &gormListingRepository{db: db}
}

// Create inserts a new listing. A duplicate (ticker, exchange) pair fails
// with ErrDuplicateListing.
func (r *gormListingRepository) Create(listing *models.Listing) (*models.Listing, error) {
	if err := r.db.Create(listing).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateListing, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return listing, nil
}

// GetByID returns the listing with the given ID, or (nil, nil) if absent.
func (r *gormListingRepository) GetByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &listing, nil
}

// GetByAssetID returns all listings of one asset.
func (r *gormListingRepository) GetByAssetID(assetID uint) ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.Where("asset_id = ?", assetID).Order("id ASC").Find(&listings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return listings, nil
}

// ListAll returns all listings in insertion order.
func (r *gormListingRepository) ListAll() ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.Order("id ASC").Find(&listings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return listings, nil
}

// Page returns one page of listings plus the total count.
func (r *gormListingRepository) Page(page pagination.PageRequest) ([]models.Listing, int64, error) {
	var total int64
	if err := r.db.Model(&models.Listing{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var listings []models.Listing
	if err := r.db.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&listings).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return listings, total, nil
}

// Upsert inserts the listing or, when its (ticker, exchange) pair already
// exists, updates the non-key fields of the existing row. The returned
// listing always carries the stored ID.
func (r *gormListingRepository) Upsert(listing *models.Listing) (*models.Listing, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "exchange_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"asset_id", "currency", "is_active", "updated_at"}),
	}).Create(listing).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var saved models.Listing
	if err := r.db.Where("ticker = ? AND exchange_id = ?", listing.Ticker, listing.ExchangeID).
		First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}
