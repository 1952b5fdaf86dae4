package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "refdata/internal/errors"
	"refdata/internal/logger"
	"refdata/internal/services"
)

// AdminHandler handles administrative requests such as triggering a sync.
type AdminHandler struct {
	syncService services.SyncServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(syncService services.SyncServicer) *AdminHandler {
	return &AdminHandler{syncService: syncService}
}

// SyncRequest represents the request payload for triggering an asset sync.
type SyncRequest struct {
	Tickers []string `json:"tickers" binding:"required,min=1,dive,required"`
}

// TriggerSync handles launching an asynchronous asset sync.
// The sync itself is best-effort: per-ticker failures are logged, never
// returned, so the endpoint only acknowledges that the batch was accepted.
// @Summary     Trigger asset sync
// @Description Launch an asynchronous reference-data sync for the given tickers
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body SyncRequest true "Tickers to sync"
// @Success     202 {object} map[string]interface{} "Sync accepted"
// @Failure     400 {object} ErrorResponse "No tickers provided"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /admin/sync [post]
func (h *AdminHandler) TriggerSync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	go func(tickers []string) {
		if err := h.syncService.SyncAssets(tickers); err != nil {
			logger.Get().Errorw("background sync failed", "error", err)
		}
	}(req.Tickers)

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Sync triggered",
		"tickers": len(req.Tickers),
	})
}
