package repositories

import (
	"errors"

	"gorm.io/gorm"

	apperrors "refdata/internal/errors"
	"refdata/internal/models"
	"refdata/internal/pagination"
)

// gormAssetRepository is the GORM-backed AssetRepository.
type gormAssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &gormAssetRepository{db: db}
}

// Create inserts a new asset. A duplicate ISIN fails with ErrDuplicateAsset.
func (r *gormAssetRepository) Create(asset *models.Asset) (*models.Asset, error) {
	if err := r.db.Create(asset).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateAsset, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// GetByID returns the asset with the given ID, or (nil, nil) if absent.
func (r *gormAssetRepository) GetByID(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// ListAll returns all assets in insertion order.
func (r *gormAssetRepository) ListAll() ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.db.Order("id ASC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// Page returns one page of assets plus the total count.
func (r *gormAssetRepository) Page(page pagination.PageRequest) ([]models.Asset, int64, error) {
	var total int64
	if err := r.db.Model(&models.Asset{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := r.db.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&assets).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, total, nil
}

// Upsert inserts or updates an asset. The conflict key is the ISIN when the
// incoming asset has one, otherwise the (name, asset_class) pair. Non-key
// fields are overwritten last-writer-wins, except that an upsert without an
// ISIN never clears one already on record.
//
// Two writers on the same ISIN can both miss the read and race on the
// insert; the loser's unique-constraint failure is retried once and lands
// on the update path.
func (r *gormAssetRepository) Upsert(asset *models.Asset) (*models.Asset, error) {
	saved, err := r.tryUpsert(asset)
	if err != nil && isUniqueConstraintError(err) {
		saved, err = r.tryUpsert(asset)
	}
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateAsset, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return saved, nil
}

func (r *gormAssetRepository) tryUpsert(asset *models.Asset) (*models.Asset, error) {
	var saved models.Asset
	err := r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Asset{})
		if asset.ISIN != nil {
			query = query.Where("isin = ?", *asset.ISIN)
		} else {
			query = query.Where("name = ? AND asset_class = ?", asset.Name, asset.AssetClass)
		}

		var existing models.Asset
		err := query.First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(asset).Error; err != nil {
				return err
			}
			saved = *asset
			return nil
		}
		if err != nil {
			return err
		}

		existing.Name = asset.Name
		existing.AssetClass = asset.AssetClass
		existing.IsActive = asset.IsActive
		if asset.ISIN != nil {
			existing.ISIN = asset.ISIN
		}
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		saved = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
