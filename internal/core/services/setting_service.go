package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// settingService provides typed access to the key-value settings store.
type settingService struct {
	settingRepo portsrepo.SettingRepositoryFacade
}

// NewSettingService creates a new SettingsSvcFacade.
func NewSettingService(settingRepo portsrepo.SettingRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingService{settingRepo: settingRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingService)(nil)

// GetSetting retrieves a raw setting row.
func (s *settingService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	setting, err := s.settingRepo.FindSettingByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to find setting %s: %w", key, err)
	}
	return setting, nil
}

// SetSetting creates or replaces a setting value. Typed keys are validated
// before persisting so a bad write cannot poison the charge path.
func (s *settingService) SetSetting(ctx context.Context, key string, value string, updaterUserID string) (*domain.Setting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if key == domain.SettingGlobalUnitPrice {
		price, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a decimal number", apperrors.ErrValidation, key)
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s must be strictly positive", apperrors.ErrValidation, key)
		}
	}

	now := time.Now().UTC()
	setting := domain.Setting{
		Key:   key,
		Value: value,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}

	if err := s.settingRepo.UpsertSetting(ctx, setting); err != nil {
		logger.Error("Failed to upsert setting", slog.String("key", key), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save setting %s: %w", key, err)
	}

	logger.Info("Setting updated", slog.String("key", key))
	return &setting, nil
}

// GetGlobalUnitPrice returns the configured global unit price. Every failure
// mode maps to ErrConfiguration: a charge cannot proceed without a valid
// price, and the problem is the operator's, not the caller's.
func (s *settingService) GetGlobalUnitPrice(ctx context.Context) (decimal.Decimal, error) {
	setting, err := s.settingRepo.FindSettingByKey(ctx, domain.SettingGlobalUnitPrice)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: global unit price is not configured", apperrors.ErrConfiguration)
		}
		return decimal.Zero, fmt.Errorf("failed to read global unit price: %w", err)
	}

	price, err := decimal.NewFromString(setting.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: global unit price %q is not a number", apperrors.ErrConfiguration, setting.Value)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: global unit price %s is not positive", apperrors.ErrConfiguration, price)
	}

	return price, nil
}
