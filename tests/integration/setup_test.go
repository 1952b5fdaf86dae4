package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"refdata/internal/handlers"
	"refdata/internal/logger"
	"refdata/internal/marketdata"
	"refdata/internal/middleware"
	"refdata/internal/models"
	"refdata/internal/repositories"
	"refdata/internal/services"
	"refdata/internal/validator"
)

const testAdminKey = "test-admin-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Provider *stubProvider
	Sync     services.SyncServicer
}

// stubProvider serves canned records so integration tests never hit the
// network.
type stubProvider struct {
	records map[string]*marketdata.Asset
}

var _ marketdata.Provider = (*stubProvider)(nil)

func (p *stubProvider) GetAsset(ticker string) (*marketdata.Asset, error) {
	return p.records[ticker], nil
}

func (p *stubProvider) GetAssetsBulk(tickers []string) (map[string]*marketdata.Asset, error) {
	results := make(map[string]*marketdata.Asset, len(tickers))
	for _, ticker := range tickers {
		results[ticker] = p.records[ticker]
	}
	return results, nil
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Exchange{},
		&models.Asset{},
		&models.Listing{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	provider := &stubProvider{records: map[string]*marketdata.Asset{}}

	// Repositories
	assetRepo := repositories.NewAssetRepository(db)
	exchangeRepo := repositories.NewExchangeRepository(db)
	listingRepo := repositories.NewListingRepository(db)

	// Services
	assetService := services.NewAssetService(assetRepo)
	exchangeService := services.NewExchangeService(exchangeRepo)
	listingService := services.NewListingService(listingRepo, assetRepo, exchangeRepo)
	syncService := services.NewSyncService(assetRepo, exchangeRepo, listingRepo, provider, marketdata.NewCodeMapper(nil))

	// Handlers
	assetHandler := handlers.NewAssetHandler(assetService)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService)
	listingHandler := handlers.NewListingHandler(listingService)
	adminHandler := handlers.NewAdminHandler(syncService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)

	exchanges := v1.Group("/exchanges")
	exchanges.POST("", exchangeHandler.CreateExchange)
	exchanges.GET("", exchangeHandler.ListExchanges)
	exchanges.GET("/:id", exchangeHandler.GetExchange)

	listings := v1.Group("/listings")
	listings.POST("", listingHandler.CreateListing)
	listings.GET("", listingHandler.ListListings)
	listings.GET("/:id", listingHandler.GetListing)
	listings.GET("/asset/:asset_id", listingHandler.GetListingsByAsset)

	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(testAdminKey))
	admin.POST("/sync", adminHandler.TriggerSync)

	return &testApp{DB: db, Router: router, Provider: provider, Sync: syncService}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createExchange creates an exchange over HTTP and returns its ID.
func (app *testApp) createExchange(t *testing.T, name, micCode, currency string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"mic_code":%q,"currency":%q}`, name, micCode, currency)
	rec := app.request("POST", "/api/v1/exchanges", body, "")
	if rec.Code != 201 {
		t.Fatalf("create exchange failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["exchange"].(map[string]interface{})["id"].(float64)
}

// createAsset creates an asset over HTTP and returns its ID.
func (app *testApp) createAsset(t *testing.T, name, assetClass string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"asset_class":%q}`, name, assetClass)
	rec := app.request("POST", "/api/v1/assets", body, "")
	if rec.Code != 201 {
		t.Fatalf("create asset failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["asset"].(map[string]interface{})["id"].(float64)
}
