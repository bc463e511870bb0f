package services

import (
	"context"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettingsSvcFacade exposes typed access to the key-value settings store.
type SettingsSvcFacade interface {
	// GetSetting retrieves a raw setting row, or ErrNotFound.
	GetSetting(ctx context.Context, key string) (*domain.Setting, error)

	// SetSetting creates or replaces a setting value, validating typed keys.
	SetSetting(ctx context.Context, key string, value string, updaterUserID string) (*domain.Setting, error)

	// GetGlobalUnitPrice returns the configured global unit price. Fails with
	// ErrConfiguration when the value is missing, non-numeric or not
	// strictly positive.
	GetGlobalUnitPrice(ctx context.Context) (decimal.Decimal, error)
}

// UnitPriceResolver resolves the price per container to apply to a new
// charge for a given customer.
type UnitPriceResolver interface {
	// ResolveUnitPrice returns the customer's override price when set and
	// strictly positive, otherwise the global configured price.
	ResolveUnitPrice(ctx context.Context, customer *domain.Customer) (decimal.Decimal, error)
}
