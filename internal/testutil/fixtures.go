package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"refdata/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestExchange creates an exchange with a unique MIC code.
func CreateTestExchange(t *testing.T, db *gorm.DB) *models.Exchange {
	t.Helper()
	mic := fmt.Sprintf("XT%02d", nextID()%100)
	return CreateTestExchangeWithMIC(t, db, mic)
}

// CreateTestExchangeWithMIC creates an exchange with the given MIC code.
func CreateTestExchangeWithMIC(t *testing.T, db *gorm.DB, mic string) *models.Exchange {
	t.Helper()

	exchange := &models.Exchange{
		Name:     fmt.Sprintf("Test Exchange %s", mic),
		MICCode:  mic,
		Currency: "USD",
		IsActive: true,
	}
	if err := db.Create(exchange).Error; err != nil {
		t.Fatalf("failed to create test exchange: %v", err)
	}
	return exchange
}

// CreateTestAsset creates a stock asset without an ISIN.
func CreateTestAsset(t *testing.T, db *gorm.DB) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Name:       fmt.Sprintf("Test Asset %d", nextID()),
		AssetClass: models.AssetClassStock,
		IsActive:   true,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestAssetWithISIN creates a stock asset with the given ISIN.
func CreateTestAssetWithISIN(t *testing.T, db *gorm.DB, isin string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Name:       fmt.Sprintf("Test Asset %d", nextID()),
		AssetClass: models.AssetClassStock,
		ISIN:       &isin,
		IsActive:   true,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestListing creates a listing with a unique ticker on the given
// asset and exchange.
func CreateTestListing(t *testing.T, db *gorm.DB, assetID, exchangeID uint) *models.Listing {
	t.Helper()
	ticker := fmt.Sprintf("TST%d", nextID())
	return CreateTestListingWithTicker(t, db, assetID, exchangeID, ticker)
}

// CreateTestListingWithTicker creates a listing with the given ticker.
func CreateTestListingWithTicker(t *testing.T, db *gorm.DB, assetID, exchangeID uint, ticker string) *models.Listing {
	t.Helper()

	listing := &models.Listing{
		AssetID:    assetID,
		ExchangeID: exchangeID,
		Ticker:     ticker,
		Currency:   "USD",
		IsActive:   true,
	}
	if err := db.Create(listing).Error; err != nil {
		t.Fatalf("failed to create test listing: %v", err)
	}
	return listing
}
