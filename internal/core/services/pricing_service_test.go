package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/core/services"
)

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	var setting *domain.Setting
	if args.Get(0) != nil {
		setting = args.Get(0).(*domain.Setting)
	}
	return setting, args.Error(1)
}

func (m *MockSettingsService) SetSetting(ctx context.Context, key string, value string, updaterUserID string) (*domain.Setting, error) {
	args := m.Called(ctx, key, value, updaterUserID)
	var setting *domain.Setting
	if args.Get(0) != nil {
		setting = args.Get(0).(*domain.Setting)
	}
	return setting, args.Error(1)
}

func (m *MockSettingsService) GetGlobalUnitPrice(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type PricingServiceTestSuite struct {
	suite.Suite
	mockSettings *MockSettingsService
	resolver     portssvc.UnitPriceResolver
}

func (s *PricingServiceTestSuite) SetupTest() {
	s.mockSettings = new(MockSettingsService)
	s.resolver = services.NewPricingService(s.mockSettings)
}

func (s *PricingServiceTestSuite) TestResolve_GlobalPriceWhenNoOverride() {
	s.mockSettings.On("GetGlobalUnitPrice", mock.Anything).Return(decimal.RequireFromString("23.00"), nil)
	customer := &domain.Customer{CustomerID: "c1", Name: "Ravi Stores"}

	price, err := s.resolver.ResolveUnitPrice(context.Background(), customer)

	s.Require().NoError(err)
	s.True(price.Equal(decimal.RequireFromString("23.00")))
}

func (s *PricingServiceTestSuite) TestResolve_CustomerOverrideWins() {
	override := decimal.RequireFromString("20.00")
	customer := &domain.Customer{CustomerID: "c1", CustomUnitPrice: &override}

	price, err := s.resolver.ResolveUnitPrice(context.Background(), customer)

	s.Require().NoError(err)
	s.True(price.Equal(override))
	s.mockSettings.AssertNotCalled(s.T(), "GetGlobalUnitPrice", mock.Anything)
}

func (s *PricingServiceTestSuite) TestResolve_NonPositiveOverrideIgnored() {
	override := decimal.Zero
	customer := &domain.Customer{CustomerID: "c1", CustomUnitPrice: &override}
	s.mockSettings.On("GetGlobalUnitPrice", mock.Anything).Return(decimal.RequireFromString("23.00"), nil)

	price, err := s.resolver.ResolveUnitPrice(context.Background(), customer)

	s.Require().NoError(err)
	s.True(price.Equal(decimal.RequireFromString("23.00")))
}

func (s *PricingServiceTestSuite) TestResolve_PropagatesConfigurationError() {
	customer := &domain.Customer{CustomerID: "c1"}
	s.mockSettings.On("GetGlobalUnitPrice", mock.Anything).Return(decimal.Zero, apperrors.ErrConfiguration)

	_, err := s.resolver.ResolveUnitPrice(context.Background(), customer)

	s.ErrorIs(err, apperrors.ErrConfiguration)
}

func (s *PricingServiceTestSuite) TestResolve_NilCustomerRejected() {
	_, err := s.resolver.ResolveUnitPrice(context.Background(), nil)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestPricingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
