package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/dto"
	"github.com/crateworks/debt_ledger_app/internal/middleware"
)

type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
}

// NewCustomerService creates a new CustomerSvcFacade.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo, auditSvc: auditSvc}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func validateCustomUnitPrice(p *decimal.Decimal) error {
	if p != nil && p.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: custom unit price must be positive", apperrors.ErrValidation)
	}
	return nil
}

// CreateCustomer persists a new customer.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}
	if err := validateCustomUnitPrice(req.CustomUnitPrice); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:      uuid.NewString(),
		Name:            name,
		Phone:           strings.TrimSpace(req.Phone),
		CustomUnitPrice: req.CustomUnitPrice,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to create customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	s.auditSvc.Record(ctx, domain.ActionCustomerCreated, "customer", customer.CustomerID, map[string]any{
		"name": customer.Name,
	}, creatorUserID)

	return &customer, nil
}

// GetCustomerByID retrieves a specific customer by their ID.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer ID is required", apperrors.ErrValidation)
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers retrieves a cursor-paginated list of customers.
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	customers, nextToken, err := s.customerRepo.ListCustomers(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	resp := dto.ToListCustomersResponse(customers, nextToken)
	return &resp, nil
}

// UpdateCustomer applies the provided fields to an existing customer.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: customer name must not be blank", apperrors.ErrValidation)
		}
		customer.Name = name
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CustomUnitPrice != nil {
		if err := validateCustomUnitPrice(req.CustomUnitPrice); err != nil {
			return nil, err
		}
		customer.CustomUnitPrice = req.CustomUnitPrice
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = updaterUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	s.auditSvc.Record(ctx, domain.ActionCustomerUpdated, "customer", customerID, map[string]any{
		"name": customer.Name,
	}, updaterUserID)

	return customer, nil
}

// DeactivateCustomer marks a customer inactive. Their tabs and history stay
// readable; only new charges are blocked.
func (s *customerService) DeactivateCustomer(ctx context.Context, customerID string, deactivatorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return err
	}

	if err := s.customerRepo.DeactivateCustomer(ctx, customerID, time.Now().UTC(), deactivatorUserID); err != nil {
		logger.Error("Failed to deactivate customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate customer %s: %w", customerID, err)
	}

	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	s.auditSvc.Record(ctx, domain.ActionCustomerDeactivated, "customer", customerID, nil, deactivatorUserID)

	return nil
}
