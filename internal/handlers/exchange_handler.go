package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "refdata/internal/errors"
	"refdata/internal/pagination"
	"refdata/internal/services"
)

// ExchangeHandler handles exchange-related requests.
type ExchangeHandler struct {
	exchangeService services.ExchangeServicer
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeService services.ExchangeServicer) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// CreateExchangeRequest represents the request payload for creating an exchange.
type CreateExchangeRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	MICCode  string `json:"mic_code" binding:"required,mic_code"`
	Currency string `json:"currency" binding:"required,iso4217"`
}

// CreateExchange handles creating a new exchange.
// @Summary     Create exchange
// @Description Create a new exchange
// @Tags        exchanges
// @Accept      json
// @Produce     json
// @Param       request body CreateExchangeRequest true "Exchange details"
// @Success     201 {object} models.Exchange "Exchange created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate MIC code"
// @Router      /exchanges [post]
func (h *ExchangeHandler) CreateExchange(c *gin.Context) {
	var req CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	exchange, err := h.exchangeService.CreateExchange(req.Name, req.MICCode, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"exchange": exchange})
}

// GetExchange handles retrieving a specific exchange.
// @Summary     Get exchange by ID
// @Description Get a specific exchange by ID
// @Tags        exchanges
// @Produce     json
// @Param       id path int true "Exchange ID"
// @Success     200 {object} models.Exchange "Exchange details"
// @Failure     400 {object} ErrorResponse "Invalid exchange ID"
// @Failure     404 {object} ErrorResponse "Exchange not found"
// @Router      /exchanges/{id} [get]
func (h *ExchangeHandler) GetExchange(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	exchange, err := h.exchangeService.GetExchangeByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exchange": exchange})
}

// ListExchanges handles listing all exchanges.
// @Summary     List exchanges
// @Description Get a paginated list of all exchanges
// @Tags        exchanges
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Exchange] "Paginated exchanges"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /exchanges [get]
func (h *ExchangeHandler) ListExchanges(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.exchangeService.ListExchanges(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
