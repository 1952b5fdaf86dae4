package models

import (
	"strings"

	apperrors "refdata/internal/errors"
)

// Listing represents one asset trading under one ticker on one exchange.
// A ticker is unique per exchange; the same asset may be listed on several
// exchanges. Listings are owned by their asset (deleted with it) and only
// reference their exchange.
type Listing struct {
	Base
	AssetID    uint   `gorm:"not null;index" json:"asset_id"`
	ExchangeID uint   `gorm:"not null;uniqueIndex:uq_listings_ticker_exchange,priority:2" json:"exchange_id"`
	Ticker     string `gorm:"not null;uniqueIndex:uq_listings_ticker_exchange,priority:1" json:"ticker"`
	Currency   string `gorm:"not null" json:"currency"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`

	Asset    *Asset    `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"-"`
	Exchange *Exchange `gorm:"foreignKey:ExchangeID" json:"-"`
}

// Validate enforces the construction invariants: non-empty ticker and
// resolved asset and exchange references.
func (l *Listing) Validate() error {
	if strings.TrimSpace(l.Ticker) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	if l.AssetID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset ID is required")
	}
	if l.ExchangeID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Exchange ID is required")
	}
	return nil
}
