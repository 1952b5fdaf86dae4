package models

import (
	"fmt"
	"strings"

	apperrors "refdata/internal/errors"
)

// AssetClass is the canonical classification of a financial instrument.
// The set is closed: values outside it fail ParseAssetClass and Validate.
type AssetClass string

const (
	AssetClassStock       AssetClass = "STOCK"
	AssetClassETF         AssetClass = "ETF"
	AssetClassCrypto      AssetClass = "CRYPTO"
	AssetClassFixedIncome AssetClass = "FIXED_INCOME"
	AssetClassCash        AssetClass = "CASH"
)

var assetClasses = map[AssetClass]bool{
	AssetClassStock:       true,
	AssetClassETF:         true,
	AssetClassCrypto:      true,
	AssetClassFixedIncome: true,
	AssetClassCash:        true,
}

// ParseAssetClass converts a string into an AssetClass. It is strict:
// callers that want the default-to-STOCK fallback must apply it themselves.
func ParseAssetClass(s string) (AssetClass, error) {
	class := AssetClass(strings.ToUpper(strings.TrimSpace(s)))
	if !assetClasses[class] {
		return "", fmt.Errorf("unknown asset class %q", s)
	}
	return class, nil
}

// Valid reports whether the asset class is a member of the canonical set.
func (c AssetClass) Valid() bool {
	return assetClasses[c]
}

// Asset represents a financial instrument independent of where it trades.
// Identity for upserts is the ISIN when present, otherwise the
// (name, asset_class) pair.
type Asset struct {
	Base
	Name       string     `gorm:"not null" json:"name"`
	AssetClass AssetClass `gorm:"column:asset_class;not null" json:"asset_class"`
	ISIN       *string    `gorm:"column:isin;uniqueIndex:uq_assets_isin" json:"isin,omitempty"`
	IsActive   bool       `gorm:"not null;default:true" json:"is_active"`
}

// Validate enforces the construction invariants: non-empty name and a
// canonical asset class.
func (a *Asset) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset name is required")
	}
	if !a.AssetClass.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("Invalid asset class %q", a.AssetClass))
	}
	return nil
}
