// Command seed populates the store with a vetted set of major exchanges and
// runs one sync batch over a starter ticker set.
package main

import (
	"fmt"
	"os"

	"refdata/internal/database"
	"refdata/internal/logger"
	"refdata/internal/marketdata"
	"refdata/internal/repositories"
	"refdata/internal/services"
)

var exchangeSeeds = []services.ExchangeSeed{
	{Name: "New York Stock Exchange", MICCode: "XNYS", Currency: "USD"},
	{Name: "NASDAQ Global Select Market", MICCode: "XNAS", Currency: "USD"},
	{Name: "London Stock Exchange", MICCode: "XLON", Currency: "GBP"},
	{Name: "Tokyo Stock Exchange", MICCode: "XTKS", Currency: "JPY"},
	{Name: "Frankfurt Stock Exchange", MICCode: "XFRA", Currency: "EUR"},
}

// starterTickers covers several asset classes and exchanges. Yahoo uses
// suffixed symbols for non-US venues (.L for London).
var starterTickers = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA",
	"JPM", "V", "WMT",
	"TSLA",
	"BTC-USD", "ETH-USD",
	"SPY", "VOO",
	"AZN.L", "HSBA.L",
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	syncService := services.NewSyncService(
		repositories.NewAssetRepository(db),
		repositories.NewExchangeRepository(db),
		repositories.NewListingRepository(db),
		marketdata.NewYahooProvider(),
		marketdata.NewCodeMapper(nil),
	)

	if err := syncService.SeedExchanges(exchangeSeeds); err != nil {
		return fmt.Errorf("exchange seeding failed: %w", err)
	}

	if err := syncService.SyncAssets(starterTickers); err != nil {
		return fmt.Errorf("asset sync failed: %w", err)
	}

	logger.Get().Info("Market data seed completed")
	return nil
}
