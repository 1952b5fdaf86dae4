package services

import (
	apperrors "refdata/internal/errors"
	"refdata/internal/logger"
	"refdata/internal/marketdata"
	"refdata/internal/models"
	"refdata/internal/repositories"
)

// syncService reconciles provider reference data into the store. It is a
// best-effort batch job: one failing ticker never affects the others in the
// same call.
type syncService struct {
	assets    repositories.AssetRepository
	exchanges repositories.ExchangeRepository
	listings  repositories.ListingRepository
	provider  marketdata.Provider
	mapper    *marketdata.CodeMapper
}

// NewSyncService creates a new SyncServicer.
func NewSyncService(
	assets repositories.AssetRepository,
	exchanges repositories.ExchangeRepository,
	listings repositories.ListingRepository,
	provider marketdata.Provider,
	mapper *marketdata.CodeMapper,
) SyncServicer {
	return &syncService{
		assets:    assets,
		exchanges: exchanges,
		listings:  listings,
		provider:  provider,
		mapper:    mapper,
	}
}

// SeedExchanges upserts the given exchange records keyed by MIC code, in
// input order. Unlike SyncAssets, a failing record aborts the whole seed
// call and the error surfaces to the caller.
func (s *syncService) SeedExchanges(seeds []ExchangeSeed) error {
	log := logger.Get()
	log.Infof("Seeding %d exchanges", len(seeds))

	for _, seed := range seeds {
		exchange := &models.Exchange{
			Name:     seed.Name,
			MICCode:  seed.MICCode,
			Currency: seed.Currency,
			IsActive: true,
		}
		if err := exchange.Validate(); err != nil {
			return err
		}
		if _, err := s.exchanges.Upsert(exchange); err != nil {
			return err
		}
	}

	log.Info("Exchange seeding complete")
	return nil
}

// SyncAssets fetches provider records for the given tickers in one bulk
// call and reconciles each into the store. Per-ticker failures are logged
// and absorbed; the only error returned is a failure of the bulk fetch
// itself. Partial success is the expected outcome.
func (s *syncService) SyncAssets(tickers []string) error {
	log := logger.Get()
	log.Infof("Syncing %d assets", len(tickers))

	records, err := s.provider.GetAssetsBulk(tickers)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMarketDataUnavailable, err)
	}

	for ticker, record := range records {
		if record == nil {
			log.Warnf("No data found for ticker %s", ticker)
			continue
		}
		if err := s.reconcile(record); err != nil {
			log.Errorw("failed to sync ticker", "ticker", ticker, "error", err)
		}
	}

	log.Info("Asset sync complete")
	return nil
}

// reconcile resolves one provider record into exchange, asset, and listing
// rows. An exchange that cannot be resolved skips the ticker; an unknown
// asset class falls back to STOCK. Exchanges are never auto-created here:
// that would let unvetted venues into the store.
func (s *syncService) reconcile(record *marketdata.Asset) error {
	log := logger.Get()

	mic := s.mapper.Map(record.ExchangeCode)
	exchange, err := s.exchanges.GetByMICCode(mic)
	if err != nil {
		return err
	}
	if exchange == nil {
		log.Warnf("Exchange %s (mapped to %s) not found, skipping %s",
			record.ExchangeCode, mic, record.Ticker)
		return nil
	}

	assetClass, err := models.ParseAssetClass(record.RawAssetClass)
	if err != nil {
		log.Warnf("Unknown asset class %q for %s, defaulting to STOCK",
			record.RawAssetClass, record.Ticker)
		assetClass = models.AssetClassStock
	}

	asset := &models.Asset{
		Name:       record.Name,
		AssetClass: assetClass,
		ISIN:       record.ISIN,
		IsActive:   true,
	}
	if err := asset.Validate(); err != nil {
		return err
	}
	saved, err := s.assets.Upsert(asset)
	if err != nil {
		return err
	}

	listing := &models.Listing{
		AssetID:    saved.ID,
		ExchangeID: exchange.ID,
		Ticker:     record.Ticker,
		Currency:   record.Currency,
		IsActive:   true,
	}
	if err := listing.Validate(); err != nil {
		return err
	}
	if _, err := s.listings.Upsert(listing); err != nil {
		return err
	}

	log.Infof("Synced %s (%s) on %s", record.Ticker, saved.Name, exchange.MICCode)
	return nil
}
