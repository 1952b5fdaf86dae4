package services

import (
	apperrors "refdata/internal/errors"
	"refdata/internal/models"
	"refdata/internal/pagination"
	"refdata/internal/repositories"
)

// exchangeService handles exchange-related business logic.
type exchangeService struct {
	exchanges repositories.ExchangeRepository
}

// NewExchangeService creates a new ExchangeServicer.
func NewExchangeService(exchanges repositories.ExchangeRepository) ExchangeServicer {
	return &exchangeService{exchanges: exchanges}
}

// CreateExchange creates a new exchange record.
func (s *exchangeService) CreateExchange(name, micCode, currency string) (*models.Exchange, error) {
	exchange := &models.Exchange{
		Name:     name,
		MICCode:  micCode,
		Currency: currency,
		IsActive: true,
	}
	if err := exchange.Validate(); err != nil {
		return nil, err
	}
	return s.exchanges.Create(exchange)
}

// GetExchangeByID returns an exchange by its ID.
func (s *exchangeService) GetExchangeByID(id uint) (*models.Exchange, error) {
	exchange, err := s.exchanges.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exchange == nil {
		return nil, apperrors.ErrExchangeNotFound
	}
	return exchange, nil
}

// ListExchanges returns a paginated list of exchanges.
func (s *exchangeService) ListExchanges(page pagination.PageRequest) (*pagination.PageResponse[models.Exchange], error) {
	page.Defaults()

	exchanges, total, err := s.exchanges.Page(page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(exchanges, page.Page, page.PageSize, total)
	return &result, nil
}
