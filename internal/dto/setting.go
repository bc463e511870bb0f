package dto

import (
	"time"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
)

// UpdateSettingRequest defines the payload for setting a configuration value.
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SettingResponse defines the data returned for a setting.
type SettingResponse struct {
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy,omitempty"`
}

// ToSettingResponse converts a domain.Setting to SettingResponse DTO.
func ToSettingResponse(s *domain.Setting) SettingResponse {
	return SettingResponse{
		Key:           s.Key,
		Value:         s.Value,
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}
