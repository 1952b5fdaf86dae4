package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "refdata/internal/errors"
	"refdata/internal/pagination"
	"refdata/internal/services"
)

// ListingHandler handles listing-related requests.
type ListingHandler struct {
	listingService services.ListingServicer
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listingService services.ListingServicer) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// CreateListingRequest represents the request payload for creating a listing.
type CreateListingRequest struct {
	AssetID    uint   `json:"asset_id" binding:"required"`
	ExchangeID uint   `json:"exchange_id" binding:"required"`
	Ticker     string `json:"ticker" binding:"required,min=1,max=20"`
	Currency   string `json:"currency" binding:"required,iso4217"`
}

// CreateListing handles creating a new listing.
// @Summary     Create listing
// @Description Create a new listing of an asset on an exchange
// @Tags        listings
// @Accept      json
// @Produce     json
// @Param       request body CreateListingRequest true "Listing details"
// @Success     201 {object} models.Listing "Listing created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Asset or exchange not found"
// @Failure     409 {object} ErrorResponse "Ticker already listed on exchange"
// @Router      /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	listing, err := h.listingService.CreateListing(req.AssetID, req.ExchangeID, req.Ticker, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"listing": listing})
}

// GetListing handles retrieving a specific listing.
// @Summary     Get listing by ID
// @Description Get a specific listing by ID
// @Tags        listings
// @Produce     json
// @Param       id path int true "Listing ID"
// @Success     200 {object} models.Listing "Listing details"
// @Failure     400 {object} ErrorResponse "Invalid listing ID"
// @Failure     404 {object} ErrorResponse "Listing not found"
// @Router      /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	listing, err := h.listingService.GetListingByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// GetListingsByAsset handles listing all listings of one asset.
// @Summary     List listings by asset
// @Description Get all listings of a specific asset
// @Tags        listings
// @Produce     json
// @Param       asset_id path int true "Asset ID"
// @Success     200 {object} map[string][]models.Listing "Listings of the asset"
// @Failure     400 {object} ErrorResponse "Invalid asset ID"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /listings/asset/{asset_id} [get]
func (h *ListingHandler) GetListingsByAsset(c *gin.Context) {
	assetID, err := parsePathID(c, "asset_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	listings, err := h.listingService.GetListingsByAsset(assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// ListListings handles listing all listings.
// @Summary     List listings
// @Description Get a paginated list of all listings
// @Tags        listings
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Listing] "Paginated listings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /listings [get]
func (h *ListingHandler) ListListings(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.listingService.ListListings(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
