package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"refdata/internal/marketdata"
	"refdata/internal/models"
	"refdata/internal/repositories"
	"refdata/internal/testutil"
)

// stubProvider serves canned records keyed by ticker. A nil entry means the
// provider has no data for that ticker.
type stubProvider struct {
	records map[string]*marketdata.Asset
	err     error
}

var _ marketdata.Provider = (*stubProvider)(nil)

func (p *stubProvider) GetAsset(ticker string) (*marketdata.Asset, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.records[ticker], nil
}

func (p *stubProvider) GetAssetsBulk(tickers []string) (map[string]*marketdata.Asset, error) {
	if p.err != nil {
		return nil, p.err
	}
	results := make(map[string]*marketdata.Asset, len(tickers))
	for _, ticker := range tickers {
		results[ticker] = p.records[ticker]
	}
	return results, nil
}

func newSyncForTest(t *testing.T, db *gorm.DB, provider marketdata.Provider) SyncServicer {
	t.Helper()
	return NewSyncService(
		repositories.NewAssetRepository(db),
		repositories.NewExchangeRepository(db),
		repositories.NewListingRepository(db),
		provider,
		marketdata.NewCodeMapper(nil),
	)
}

func TestSeedExchanges(t *testing.T) {
	t.Run("creates_new_exchanges", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSyncForTest(t, db, &stubProvider{})

		err := svc.SeedExchanges([]ExchangeSeed{
			{Name: "New York Stock Exchange", MICCode: "XNYS", Currency: "USD"},
			{Name: "NASDAQ", MICCode: "XNAS", Currency: "USD"},
		})
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Exchange{}).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 exchanges, got %d", count)
		}
	})

	t.Run("rerun_updates_instead_of_duplicating", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSyncForTest(t, db, &stubProvider{})

		err := svc.SeedExchanges([]ExchangeSeed{
			{Name: "NASDAQ", MICCode: "XNAS", Currency: "USD"},
		})
		testutil.AssertNoError(t, err)

		err = svc.SeedExchanges([]ExchangeSeed{
			{Name: "NASDAQ Stock Market", MICCode: "XNAS", Currency: "USD"},
		})
		testutil.AssertNoError(t, err)

		var exchanges []models.Exchange
		db.Find(&exchanges)
		if len(exchanges) != 1 {
			t.Fatalf("expected 1 exchange after rerun, got %d", len(exchanges))
		}
		if exchanges[0].Name != "NASDAQ Stock Market" {
			t.Errorf("expected updated name, got %s", exchanges[0].Name)
		}
	})

	t.Run("invalid_seed_aborts_with_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSyncForTest(t, db, &stubProvider{})

		err := svc.SeedExchanges([]ExchangeSeed{
			{Name: "NASDAQ", MICCode: "XNAS", Currency: "USD"},
			{Name: "", MICCode: "XNYS", Currency: "USD"},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSyncAssets(t *testing.T) {
	t.Run("creates_asset_and_listing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		nasdaq := testutil.CreateTestExchangeWithMIC(t, db, "XNAS")

		provider := &stubProvider{records: map[string]*marketdata.Asset{
			"AAPL": {
				Ticker:        "AAPL",
				Name:          "Apple Inc.",
				Currency:      "USD",
				RawAssetClass: "STOCK",
				ExchangeCode:  "NMS",
			},
		}}
		svc := newSyncForTest(t, db, provider)

		err := svc.SyncAssets([]string{"AAPL"})
		testutil.AssertNoError(t, err)

		var asset models.Asset
		if err := db.Where("name = ?", "Apple Inc.").First(&asset).Error; err != nil {
			t.Fatalf("expected asset to exist: %v", err)
		}
		if asset.AssetClass != models.AssetClassStock {
			t.Errorf("expected STOCK, got %s", asset.AssetClass)
		}

		var listing models.Listing
		if err := db.Where("ticker = ?", "AAPL").First(&listing).Error; err != nil {
			t.Fatalf("expected listing to exist: %v", err)
		}
		if listing.AssetID != asset.ID {
			t.Errorf("expected listing on asset %d, got %d", asset.ID, listing.AssetID)
		}
		if listing.ExchangeID != nasdaq.ID {
			t.Errorf("expected listing on exchange %d, got %d", nasdaq.ID, listing.ExchangeID)
		}
	})

	t.Run("rerun_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestExchangeWithMIC(t, db, "XNAS")

		provider := &stubProvider{records: map[string]*marketdata.Asset{
			"AAPL": {
				Ticker:        "AAPL",
				Name:          "Apple Inc.",
				Currency:      "USD",
				RawAssetClass: "STOCK",
				ExchangeCode:  "NMS",
			},
		}}
		svc := newSyncForTest(t, db, provider)

		testutil.AssertNoError(t, svc.SyncAssets([]string{"AAPL"}))
		testutil.AssertNoError(t, svc.SyncAssets([]string{"AAPL"}))

		var assetCount, listingCount int64
		db.Model(&models.Asset{}).Count(&assetCount)
		db.Model(&models.Listing{}).Count(&listingCount)
		if assetCount != 1 || listingCount != 1 {
			t.Errorf("expected 1 asset and 1 listing, got %d and %d", assetCount, listingCount)
		}
	})

	t.Run("absent_record_is_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestExchangeWithMIC(t, db, "XNAS")

		svc := newSyncForTest(t, db, &stubProvider{records: map[string]*marketdata.Asset{}})

		err := svc.SyncAssets([]string{"NOSUCH"})
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Asset{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no assets, got %d", count)
		}
	})

	t.Run("unknown_exchange_skips_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		// No exchange seeded: reconcile must skip, not auto-create.

		provider := &stubProvider{records: map[string]*marketdata.Asset{
			"AAPL": {
				Ticker:        "AAPL",
				Name:          "Apple Inc.",
				Currency:      "USD",
				RawAssetClass: "STOCK",
				ExchangeCode:  "NMS",
			},
		}}
		svc := newSyncForTest(t, db, provider)

		err := svc.SyncAssets([]string{"AAPL"})
		testutil.AssertNoError(t, err)

		var exchangeCount, assetCount int64
		db.Model(&models.Exchange{}).Count(&exchangeCount)
		db.Model(&models.Asset{}).Count(&assetCount)
		if exchangeCount != 0 {
			t.Errorf("expected no exchange to be auto-created, got %d", exchangeCount)
		}
		if assetCount != 0 {
			t.Errorf("expected no asset for skipped ticker, got %d", assetCount)
		}
	})

	t.Run("unknown_asset_class_defaults_to_stock", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestExchangeWithMIC(t, db, "XNAS")

		provider := &stubProvider{records: map[string]*marketdata.Asset{
			"ODD": {
				Ticker:        "ODD",
				Name:          "Odd Instrument",
				Currency:      "USD",
				RawAssetClass: "FUTURES",
				ExchangeCode:  "NMS",
			},
		}}
		svc := newSyncForTest(t, db, provider)

		testutil.AssertNoError(t, svc.SyncAssets([]string{"ODD"}))

		var asset models.Asset
		if err := db.Where("name = ?", "Odd Instrument").First(&asset).Error; err != nil {
			t.Fatalf("expected asset to exist: %v", err)
		}
		if asset.AssetClass != models.AssetClassStock {
			t.Errorf("expected STOCK fallback, got %s", asset.AssetClass)
		}
	})

	t.Run("one_bad_ticker_does_not_fail_the_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestExchangeWithMIC(t, db, "XNAS")

		provider := &stubProvider{records: map[string]*marketdata.Asset{
			"AAPL": {
				Ticker:        "AAPL",
				Name:          "Apple Inc.",
				Currency:      "USD",
				RawAssetClass: "STOCK",
				ExchangeCode:  "NMS",
			},
			// Empty name fails validation during reconcile.
			"BAD": {
				Ticker:        "BAD",
				Name:          "",
				Currency:      "USD",
				RawAssetClass: "STOCK",
				ExchangeCode:  "NMS",
			},
		}}
		svc := newSyncForTest(t, db, provider)

		err := svc.SyncAssets([]string{"AAPL", "BAD"})
		testutil.AssertNoError(t, err)

		var listing models.Listing
		if err := db.Where("ticker = ?", "AAPL").First(&listing).Error; err != nil {
			t.Errorf("expected AAPL to sync despite the failing ticker: %v", err)
		}
		var badCount int64
		db.Model(&models.Listing{}).Where("ticker = ?", "BAD").Count(&badCount)
		if badCount != 0 {
			t.Errorf("expected no listing for failed ticker, got %d", badCount)
		}
	})

	t.Run("bulk_fetch_failure_surfaces", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		svc := newSyncForTest(t, db, &stubProvider{err: errors.New("connection refused")})

		err := svc.SyncAssets([]string{"AAPL"})
		testutil.AssertAppError(t, err, "MARKET_DATA_UNAVAILABLE")
	})
}
