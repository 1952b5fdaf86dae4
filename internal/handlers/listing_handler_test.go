package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "refdata/internal/errors"
	"refdata/internal/models"
	"refdata/internal/pagination"
	"refdata/internal/services"
)

// --- mock listing service ---

type mockListingService struct {
	createListingFn      func(assetID, exchangeID uint, ticker, currency string) (*models.Listing, error)
	getListingByIDFn     func(id uint) (*models.Listing, error)
	getListingsByAssetFn func(assetID uint) ([]models.Listing, error)
	listListingsFn       func(page pagination.PageRequest) (*pagination.PageResponse[models.Listing], error)
}

var _ services.ListingServicer = (*mockListingService)(nil)

func (m *mockListingService) CreateListing(assetID, exchangeID uint, ticker, currency string) (*models.Listing, error) {
	if m.createListingFn != nil {
		return m.createListingFn(assetID, exchangeID, ticker, currency)
	}
	return &models.Listing{}, nil
}

func (m *mockListingService) GetListingByID(id uint) (*models.Listing, error) {
	if m.getListingByIDFn != nil {
		return m.getListingByIDFn(id)
	}
	return &models.Listing{}, nil
}

func (m *mockListingService) GetListingsByAsset(assetID uint) ([]models.Listing, error) {
	if m.getListingsByAssetFn != nil {
		return m.getListingsByAssetFn(assetID)
	}
	return []models.Listing{}, nil
}

func (m *mockListingService) ListListings(page pagination.PageRequest) (*pagination.PageResponse[models.Listing], error) {
	if m.listListingsFn != nil {
		return m.listListingsFn(page)
	}
	resp := pagination.NewPageResponse([]models.Listing{}, 1, 20, 0)
	return &resp, nil
}

func setupListingRouter(handler *ListingHandler) *gin.Engine {
	r := gin.New()
	r.POST("/listings", handler.CreateListing)
	r.GET("/listings", handler.ListListings)
	r.GET("/listings/:id", handler.GetListing)
	r.GET("/listings/asset/:asset_id", handler.GetListingsByAsset)
	return r
}

// --- tests ---

func TestListingHandler_CreateListing(t *testing.T) {
	t.Run("returns_201_on_success", func(t *testing.T) {
		svc := &mockListingService{
			createListingFn: func(assetID, exchangeID uint, ticker, currency string) (*models.Listing, error) {
				return &models.Listing{
					Base:       models.Base{ID: 1},
					AssetID:    assetID,
					ExchangeID: exchangeID,
					Ticker:     ticker,
					Currency:   currency,
					IsActive:   true,
				}, nil
			},
		}
		r := setupListingRouter(NewListingHandler(svc))

		rec := doRequest(r, "POST", "/listings",
			`{"asset_id":1,"exchange_id":2,"ticker":"AAPL","currency":"USD"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		listing := result["listing"].(map[string]interface{})
		if listing["ticker"] != "AAPL" {
			t.Errorf("expected ticker=AAPL, got %v", listing["ticker"])
		}
		if listing["exchange_id"].(float64) != 2 {
			t.Errorf("expected exchange_id=2, got %v", listing["exchange_id"])
		}
	})

	t.Run("returns_400_missing_ticker", func(t *testing.T) {
		r := setupListingRouter(NewListingHandler(&mockListingService{}))

		rec := doRequest(r, "POST", "/listings",
			`{"asset_id":1,"exchange_id":2,"currency":"USD"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_404_asset_not_found", func(t *testing.T) {
		svc := &mockListingService{
			createListingFn: func(uint, uint, string, string) (*models.Listing, error) {
				return nil, apperrors.ErrAssetNotFound
			},
		}
		r := setupListingRouter(NewListingHandler(svc))

		rec := doRequest(r, "POST", "/listings",
			`{"asset_id":9999,"exchange_id":2,"ticker":"AAPL","currency":"USD"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "ASSET_NOT_FOUND")
	})

	t.Run("returns_409_duplicate", func(t *testing.T) {
		svc := &mockListingService{
			createListingFn: func(uint, uint, string, string) (*models.Listing, error) {
				return nil, apperrors.ErrDuplicateListing
			},
		}
		r := setupListingRouter(NewListingHandler(svc))

		rec := doRequest(r, "POST", "/listings",
			`{"asset_id":1,"exchange_id":2,"ticker":"AAPL","currency":"USD"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_LISTING")
	})
}

func TestListingHandler_GetListing(t *testing.T) {
	t.Run("returns_404_not_found", func(t *testing.T) {
		svc := &mockListingService{
			getListingByIDFn: func(uint) (*models.Listing, error) {
				return nil, apperrors.ErrListingNotFound
			},
		}
		r := setupListingRouter(NewListingHandler(svc))

		rec := doRequest(r, "GET", "/listings/9999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "LISTING_NOT_FOUND")
	})
}

func TestListingHandler_GetListingsByAsset(t *testing.T) {
	t.Run("returns_200_with_listings", func(t *testing.T) {
		svc := &mockListingService{
			getListingsByAssetFn: func(assetID uint) ([]models.Listing, error) {
				return []models.Listing{
					{Base: models.Base{ID: 1}, AssetID: assetID, ExchangeID: 1, Ticker: "AAPL"},
					{Base: models.Base{ID: 2}, AssetID: assetID, ExchangeID: 2, Ticker: "APC.F"},
				}, nil
			},
		}
		r := setupListingRouter(NewListingHandler(svc))

		rec := doRequest(r, "GET", "/listings/asset/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		listings := result["listings"].([]interface{})
		if len(listings) != 2 {
			t.Errorf("expected 2 listings, got %d", len(listings))
		}
	})

	t.Run("returns_404_asset_not_found", func(t *testing.T) {
		svc := &mockListingService{
			getListingsByAssetFn: func(uint) ([]models.Listing, error) {
				return nil, apperrors.ErrAssetNotFound
			},
		}
		r := setupListingRouter(NewListingHandler(svc))

		rec := doRequest(r, "GET", "/listings/asset/9999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "ASSET_NOT_FOUND")
	})
}
