package services

import (
	"context"
	"fmt"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// pricingService resolves the unit price to apply to a new charge.
type pricingService struct {
	settingsSvc portssvc.SettingsSvcFacade
}

// NewPricingService creates a new UnitPriceResolver.
func NewPricingService(settingsSvc portssvc.SettingsSvcFacade) portssvc.UnitPriceResolver {
	return &pricingService{settingsSvc: settingsSvc}
}

var _ portssvc.UnitPriceResolver = (*pricingService)(nil)

// ResolveUnitPrice returns the customer's override price when set and
// strictly positive, otherwise the global configured price. A non-positive
// override is ignored rather than rejected: it means "no override".
func (s *pricingService) ResolveUnitPrice(ctx context.Context, customer *domain.Customer) (decimal.Decimal, error) {
	if customer == nil {
		return decimal.Zero, fmt.Errorf("%w: customer is required to resolve a unit price", apperrors.ErrValidation)
	}

	if price, ok := customer.EffectiveUnitPrice(); ok {
		return price, nil
	}

	price, err := s.settingsSvc.GetGlobalUnitPrice(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return price, nil
}
