package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "refdata/internal/errors"
	"refdata/internal/models"
	"refdata/internal/pagination"
	"refdata/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=255"`
	AssetClass string  `json:"asset_class" binding:"required,asset_class"`
	ISIN       *string `json:"isin" binding:"omitempty,len=12"`
}

// CreateAsset handles creating a new asset.
// @Summary     Create asset
// @Description Create a new asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate ISIN"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(req.Name, models.AssetClass(req.AssetClass), req.ISIN)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAsset handles retrieving a specific asset.
// @Summary     Get asset by ID
// @Description Get a specific asset by ID
// @Tags        assets
// @Produce     json
// @Param       id path int true "Asset ID"
// @Success     200 {object} models.Asset "Asset details"
// @Failure     400 {object} ErrorResponse "Invalid asset ID"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// ListAssets handles listing all assets.
// @Summary     List assets
// @Description Get a paginated list of all assets
// @Tags        assets
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.assetService.ListAssets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
