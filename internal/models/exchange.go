package models

import (
	"strings"

	apperrors "refdata/internal/errors"
)

// Exchange represents a trading venue identified by its MIC code.
type Exchange struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	MICCode  string `gorm:"column:mic_code;not null;uniqueIndex:uq_exchanges_mic_code" json:"mic_code"`
	Currency string `gorm:"not null" json:"currency"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

// Validate enforces the construction invariants: non-empty name and MIC code.
func (e *Exchange) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Exchange name is required")
	}
	if strings.TrimSpace(e.MICCode) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "MIC code is required")
	}
	return nil
}
