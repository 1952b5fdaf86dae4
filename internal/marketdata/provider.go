// Package marketdata abstracts the external reference-data source. The one
// production implementation is backed by Yahoo Finance; tests substitute
// stub providers.
package marketdata

// Asset is the normalized record a provider returns for one ticker.
// RawAssetClass and ExchangeCode carry the provider's own vocabulary, not
// the canonical enum or MIC codes; consumers translate them downstream.
type Asset struct {
	Ticker        string
	Name          string
	Currency      string
	RawAssetClass string
	ISIN          *string
	ExchangeCode  string
}

// Provider fetches reference data for tickers. A nil entry in the bulk
// result means no data was found for that ticker; it is not an error and
// must not affect the other tickers in the batch.
type Provider interface {
	GetAsset(ticker string) (*Asset, error)
	GetAssetsBulk(tickers []string) (map[string]*Asset, error)
}
