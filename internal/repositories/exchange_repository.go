package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "refdata/internal/errors"
	"refdata/internal/models"
	"refdata/internal/pagination"
)

// gormExchangeRepository is the GORM-backed ExchangeRepository.
type gormExchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository creates a new ExchangeRepository.
func NewExchangeRepository(db *gorm.DB) ExchangeRepository {
	return &gormExchangeRepository{db: db}
}

// Create inserts a new exchange. A duplicate MIC code fails with
// ErrDuplicateExchange.
func (r *gormExchangeRepository) Create(exchange *models.Exchange) (*models.Exchange, error) {
	if err := r.db.Create(exchange).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateExchange, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return exchange, nil
}

// GetByID returns the exchange with the given ID, or (nil, nil) if absent.
func (r *gormExchangeRepository) GetByID(id uint) (*models.Exchange, error) {
	var exchange models.Exchange
	if err := r.db.First(&exchange, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &exchange, nil
}

// GetByMICCode returns the exchange with the given MIC code, or (nil, nil)
// if absent.
func (r *gormExchangeRepository) GetByMICCode(code string) (*models.Exchange, error) {
	var exchange models.Exchange
	if err := r.db.Where("mic_code = ?", code).First(&exchange).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &exchange, nil
}

// ListAll returns all exchanges in insertion order.
func (r *gormExchangeRepository) ListAll() ([]models.Exchange, error) {
	var exchanges []models.Exchange
	if err := r.db.Order("id ASC").Find(&exchanges).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return exchanges, nil
}

// Page returns one page of exchanges plus the total count.
func (r *gormExchangeRepository) Page(page pagination.PageRequest) ([]models.Exchange, int64, error) {
	var total int64
	if err := r.db.Model(&models.Exchange{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var exchanges []models.Exchange
	if err := r.db.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&exchanges).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return exchanges, total, nil
}

// Upsert inserts the exchange or, when its MIC code already exists, updates
// the non-key fields of the existing row (last writer wins). The returned
// exchange always carries the stored ID.
func (r *gormExchangeRepository) Upsert(exchange *models.Exchange) (*models.Exchange, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mic_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "currency", "is_active", "updated_at"}),
	}).Create(exchange).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// The conflict-update path does not populate the ID on every driver;
	// re-read by the conflict key.
	return r.GetByMICCode(exchange.MICCode)
}
