package repositories

import (
	"context"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
)

// SettingReader defines read operations for settings data
type SettingReader interface {
	// FindSettingByKey retrieves a setting row, or ErrNotFound.
	FindSettingByKey(ctx context.Context, key string) (*domain.Setting, error)
}

// SettingWriter defines write operations for settings data
type SettingWriter interface {
	// UpsertSetting creates or replaces a setting value.
	UpsertSetting(ctx context.Context, setting domain.Setting) error
}

// SettingRepositoryFacade combines all settings repository interfaces
type SettingRepositoryFacade interface {
	SettingReader
	SettingWriter
}
