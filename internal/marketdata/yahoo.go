package marketdata

import (
	"strings"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"

	"refdata/internal/logger"
	"refdata/internal/models"
)

// quoteTypeToClass translates Yahoo quote types into the canonical
// asset-class vocabulary. Quote types outside the map pass through verbatim
// so the sync layer applies its single explicit fallback rule.
var quoteTypeToClass = map[string]string{
	"EQUITY":         string(models.AssetClassStock),
	"ETF":            string(models.AssetClassETF),
	"MUTUALFUND":     string(models.AssetClassETF),
	"CRYPTOCURRENCY": string(models.AssetClassCrypto),
	"MONEYMARKET":    string(models.AssetClassCash),
}

// YahooProvider resolves tickers against Yahoo Finance quotes.
type YahooProvider struct{}

// NewYahooProvider creates a new Yahoo-backed Provider.
func NewYahooProvider() Provider {
	return &YahooProvider{}
}

// GetAsset fetches the record for a single ticker. It returns (nil, nil)
// when Yahoo has no data for the symbol.
func (p *YahooProvider) GetAsset(ticker string) (*Asset, error) {
	q, err := quote.Get(ticker)
	if err != nil {
		return nil, err
	}
	if q == nil || q.Symbol == "" {
		return nil, nil
	}
	return assetFromQuote(q), nil
}

// GetAssetsBulk fetches records for the given tickers in one batched quote
// request. Every requested ticker is present in the result; tickers Yahoo
// returned nothing for map to nil. An iterator failure degrades to absent
// entries rather than failing tickers that already resolved.
func (p *YahooProvider) GetAssetsBulk(tickers []string) (map[string]*Asset, error) {
	results := make(map[string]*Asset, len(tickers))
	for _, ticker := range tickers {
		results[ticker] = nil
	}

	iter := quote.List(tickers)
	for iter.Next() {
		q := iter.Quote()
		if q == nil || q.Symbol == "" {
			continue
		}
		results[q.Symbol] = assetFromQuote(q)
	}
	if err := iter.Err(); err != nil {
		if allAbsent(results) {
			return nil, err
		}
		logger.Get().Warnf("Yahoo bulk quote iteration ended early: %v", err)
	}

	return results, nil
}

// assetFromQuote normalizes a Yahoo quote into a provider record. The quote
// payload carries only the short display name; full legal names live on the
// per-type payloads and are not worth an extra request per ticker. Yahoo
// quotes do not carry ISINs, so the field stays nil. ExchangeID is a Yahoo
// exchange code such as NMS or NYQ, not a MIC code.
func assetFromQuote(q *finance.Quote) *Asset {
	name := q.ShortName
	if name == "" {
		name = q.Symbol
	}

	currency := q.CurrencyID
	if currency == "" {
		currency = "USD"
	}

	rawClass := strings.ToUpper(string(q.QuoteType))
	if class, ok := quoteTypeToClass[rawClass]; ok {
		rawClass = class
	}

	return &Asset{
		Ticker:        q.Symbol,
		Name:          name,
		Currency:      currency,
		RawAssetClass: rawClass,
		ExchangeCode:  q.ExchangeID,
	}
}

func allAbsent(results map[string]*Asset) bool {
	for _, record := range results {
		if record != nil {
			return false
		}
	}
	return true
}
