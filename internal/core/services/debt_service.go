package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/dto"
	"github.com/crateworks/debt_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrNoOpenTab        = fmt.Errorf("%w: customer has no open tab", apperrors.ErrNotFound)
	ErrOverpayment      = fmt.Errorf("%w: overpayment not allowed", apperrors.ErrValidation)
	ErrNegativeBalance  = fmt.Errorf("%w: adjustment would drive the balance negative", apperrors.ErrValidation)
	ErrNonZeroClose     = fmt.Errorf("%w: cannot close tab with non-zero balance", apperrors.ErrValidation)
	ErrInactiveCustomer = fmt.Errorf("%w: customer is inactive", apperrors.ErrValidation)
)

// debtService is the ledger engine. It validates commands, resolves prices,
// and runs each mutation as one atomic unit through the tab store; the
// balance-dependent checks live inside the mutator so they always see the
// locked row.
type debtService struct {
	debtRepo    portsrepo.DebtRepositoryFacade
	customerSvc portssvc.CustomerReaderSvc
	priceSvc    portssvc.UnitPriceResolver
	auditSvc    portssvc.AuditSvcFacade
}

// NewDebtService creates a new DebtSvcFacade.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, customerSvc portssvc.CustomerReaderSvc, priceSvc portssvc.UnitPriceResolver, auditSvc portssvc.AuditSvcFacade) portssvc.DebtSvcFacade {
	return &debtService{
		debtRepo:    debtRepo,
		customerSvc: customerSvc,
		priceSvc:    priceSvc,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// newTransaction builds a ledger entry skeleton with fresh identity and
// audit fields. BalanceAfter is filled in by the caller.
func newTransaction(tabID string, txType domain.TransactionType, amount decimal.Decimal, date time.Time, notes string, actorID string, now time.Time) domain.DebtTransaction {
	return domain.DebtTransaction{
		TransactionID:   uuid.NewString(),
		DebtTabID:       tabID,
		TransactionType: txType,
		Amount:          amount,
		Notes:           notes,
		TransactionDate: date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}

// RecordCharge appends a CHARGE entry, creating an open tab when the
// customer has none. A charge never closes a tab.
func (s *debtService) RecordCharge(ctx context.Context, cmd portssvc.ChargeCommand) (*portssvc.DebtOperationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cmd.Containers <= 0 {
		return nil, fmt.Errorf("%w: containers must be positive", apperrors.ErrValidation)
	}
	if cmd.ActorID == "" {
		return nil, fmt.Errorf("%w: acting user is required", apperrors.ErrValidation)
	}

	customer, err := s.customerSvc.GetCustomerByID(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, ErrInactiveCustomer
	}

	unitPrice, err := s.priceSvc.ResolveUnitPrice(ctx, customer)
	if err != nil {
		return nil, err
	}
	amount := unitPrice.Mul(decimal.NewFromInt(cmd.Containers))

	now := time.Now().UTC()
	txn, tab, err := s.debtRepo.MutateOpenTab(ctx, cmd.CustomerID, true, func(ctx context.Context, tab *domain.DebtTab) (*domain.DebtTransaction, error) {
		newBalance := tab.TotalBalance.Add(amount)

		entry := newTransaction(tab.TabID, domain.Charge, amount, cmd.TransactionDate, cmd.Notes, cmd.ActorID, now)
		containers := cmd.Containers
		price := unitPrice
		entry.Containers = &containers
		entry.UnitPrice = &price
		entry.BalanceAfter = newBalance

		tab.TotalBalance = newBalance
		tab.LastUpdatedAt = now
		tab.LastUpdatedBy = cmd.ActorID
		return &entry, nil
	})
	if err != nil {
		logger.Error("Failed to record charge", slog.String("customer_id", cmd.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Charge recorded",
		slog.String("customer_id", cmd.CustomerID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
		slog.String("balance_after", txn.BalanceAfter.String()),
	)
	s.auditSvc.Record(ctx, domain.ActionChargeRecorded, "debt_transaction", txn.TransactionID, map[string]any{
		"customerID":   cmd.CustomerID,
		"tabID":        tab.TabID,
		"containers":   cmd.Containers,
		"unitPrice":    unitPrice.String(),
		"amount":       amount.String(),
		"balanceAfter": txn.BalanceAfter.String(),
	}, cmd.ActorID)

	return &portssvc.DebtOperationResult{Transaction: txn, Tab: tab}, nil
}

// RecordPayment appends a PAYMENT entry against the customer's open tab and
// closes the tab when the balance reaches zero.
func (s *debtService) RecordPayment(ctx context.Context, cmd portssvc.PaymentCommand) (*portssvc.DebtOperationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cmd.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if cmd.ActorID == "" {
		return nil, fmt.Errorf("%w: acting user is required", apperrors.ErrValidation)
	}

	if _, err := s.customerSvc.GetCustomerByID(ctx, cmd.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	closed := false
	txn, tab, err := s.debtRepo.MutateOpenTab(ctx, cmd.CustomerID, false, func(ctx context.Context, tab *domain.DebtTab) (*domain.DebtTransaction, error) {
		if cmd.Amount.GreaterThan(tab.TotalBalance) {
			return nil, fmt.Errorf("%w: payment %s exceeds balance %s", ErrOverpayment, cmd.Amount, tab.TotalBalance)
		}

		newBalance := tab.TotalBalance.Sub(cmd.Amount)

		entry := newTransaction(tab.TabID, domain.Payment, cmd.Amount, cmd.TransactionDate, cmd.Notes, cmd.ActorID, now)
		entry.BalanceAfter = newBalance

		tab.TotalBalance = newBalance
		tab.LastUpdatedAt = now
		tab.LastUpdatedBy = cmd.ActorID
		if newBalance.IsZero() {
			tab.Close(cmd.TransactionDate)
			closed = true
		}
		return &entry, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoOpenTab
		}
		logger.Error("Failed to record payment", slog.String("customer_id", cmd.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment recorded",
		slog.String("customer_id", cmd.CustomerID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", cmd.Amount.String()),
		slog.Bool("tab_closed", closed),
	)
	s.auditSvc.Record(ctx, domain.ActionPaymentRecorded, "debt_transaction", txn.TransactionID, map[string]any{
		"customerID":   cmd.CustomerID,
		"tabID":        tab.TabID,
		"amount":       cmd.Amount.String(),
		"balanceAfter": txn.BalanceAfter.String(),
	}, cmd.ActorID)
	if closed {
		s.auditSvc.Record(ctx, domain.ActionTabClosed, "debt_tab", tab.TabID, map[string]any{
			"customerID": cmd.CustomerID,
			"closedBy":   "payment",
		}, cmd.ActorID)
	}

	return &portssvc.DebtOperationResult{Transaction: txn, Tab: tab}, nil
}

// RecordAdjustment appends an ADJUSTMENT entry. Adjustments never close the
// tab, even when they bring the balance to exactly zero: closing stays a
// payment-side action.
func (s *debtService) RecordAdjustment(ctx context.Context, cmd portssvc.AdjustmentCommand) (*portssvc.DebtOperationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cmd.Amount.IsZero() {
		return nil, fmt.Errorf("%w: adjustment amount must not be zero", apperrors.ErrValidation)
	}
	if strings.TrimSpace(cmd.Reason) == "" {
		return nil, fmt.Errorf("%w: adjustment reason is required", apperrors.ErrValidation)
	}
	if cmd.ActorID == "" {
		return nil, fmt.Errorf("%w: acting user is required", apperrors.ErrValidation)
	}

	if _, err := s.customerSvc.GetCustomerByID(ctx, cmd.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn, tab, err := s.debtRepo.MutateOpenTab(ctx, cmd.CustomerID, false, func(ctx context.Context, tab *domain.DebtTab) (*domain.DebtTransaction, error) {
		newBalance := tab.TotalBalance.Add(cmd.Amount)
		if newBalance.IsNegative() {
			return nil, fmt.Errorf("%w: balance %s, adjustment %s", ErrNegativeBalance, tab.TotalBalance, cmd.Amount)
		}

		entry := newTransaction(tab.TabID, domain.Adjustment, cmd.Amount, cmd.TransactionDate, cmd.Notes, cmd.ActorID, now)
		entry.AdjustmentReason = strings.TrimSpace(cmd.Reason)
		entry.BalanceAfter = newBalance

		tab.TotalBalance = newBalance
		tab.LastUpdatedAt = now
		tab.LastUpdatedBy = cmd.ActorID
		return &entry, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoOpenTab
		}
		logger.Error("Failed to record adjustment", slog.String("customer_id", cmd.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Adjustment recorded",
		slog.String("customer_id", cmd.CustomerID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", cmd.Amount.String()),
	)
	s.auditSvc.Record(ctx, domain.ActionAdjustmentRecorded, "debt_transaction", txn.TransactionID, map[string]any{
		"customerID":   cmd.CustomerID,
		"tabID":        tab.TabID,
		"amount":       cmd.Amount.String(),
		"reason":       txn.AdjustmentReason,
		"balanceAfter": txn.BalanceAfter.String(),
	}, cmd.ActorID)

	return &portssvc.DebtOperationResult{Transaction: txn, Tab: tab}, nil
}

// MarkPaid settles and closes the customer's open tab. An optional final
// payment is applied exactly like RecordPayment first; the remaining balance
// must then be zero. Without a final payment the result carries no
// transaction.
func (s *debtService) MarkPaid(ctx context.Context, cmd portssvc.MarkPaidCommand) (*portssvc.DebtOperationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cmd.FinalPayment != nil && cmd.FinalPayment.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: final payment must be positive when provided", apperrors.ErrValidation)
	}
	if cmd.ActorID == "" {
		return nil, fmt.Errorf("%w: acting user is required", apperrors.ErrValidation)
	}

	if _, err := s.customerSvc.GetCustomerByID(ctx, cmd.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn, tab, err := s.debtRepo.MutateOpenTab(ctx, cmd.CustomerID, false, func(ctx context.Context, tab *domain.DebtTab) (*domain.DebtTransaction, error) {
		var entry *domain.DebtTransaction

		remaining := tab.TotalBalance
		if cmd.FinalPayment != nil {
			if cmd.FinalPayment.GreaterThan(tab.TotalBalance) {
				return nil, fmt.Errorf("%w: final payment %s exceeds balance %s", ErrOverpayment, cmd.FinalPayment, tab.TotalBalance)
			}
			remaining = tab.TotalBalance.Sub(*cmd.FinalPayment)

			e := newTransaction(tab.TabID, domain.Payment, *cmd.FinalPayment, cmd.TransactionDate, cmd.Notes, cmd.ActorID, now)
			e.BalanceAfter = remaining
			entry = &e
		}

		if !remaining.IsZero() {
			return nil, fmt.Errorf("%w: remaining balance %s", ErrNonZeroClose, remaining)
		}

		tab.Close(cmd.TransactionDate)
		tab.LastUpdatedAt = now
		tab.LastUpdatedBy = cmd.ActorID
		return entry, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoOpenTab
		}
		logger.Error("Failed to mark tab paid", slog.String("customer_id", cmd.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Tab marked paid", slog.String("customer_id", cmd.CustomerID), slog.String("tab_id", tab.TabID))
	if txn != nil {
		s.auditSvc.Record(ctx, domain.ActionPaymentRecorded, "debt_transaction", txn.TransactionID, map[string]any{
			"customerID":   cmd.CustomerID,
			"tabID":        tab.TabID,
			"amount":       txn.Amount.String(),
			"balanceAfter": txn.BalanceAfter.String(),
			"finalPayment": true,
		}, cmd.ActorID)
	}
	s.auditSvc.Record(ctx, domain.ActionTabClosed, "debt_tab", tab.TabID, map[string]any{
		"customerID": cmd.CustomerID,
		"closedBy":   "mark_paid",
	}, cmd.ActorID)

	return &portssvc.DebtOperationResult{Transaction: txn, Tab: tab}, nil
}

// GetCustomerSnapshot returns the customer, their open tab (nil when none)
// and the open tab's transactions.
func (s *debtService) GetCustomerSnapshot(ctx context.Context, customerID string) (*dto.CustomerDebtSnapshotResponse, error) {
	customer, err := s.customerSvc.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CustomerDebtSnapshotResponse{
		Customer:     dto.ToCustomerResponse(customer),
		Transactions: []dto.DebtTransactionResponse{},
	}

	openTab, err := s.debtRepo.FindOpenTabByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("failed to find open tab for customer %s: %w", customerID, err)
	}

	tabResp := dto.ToTabResponse(openTab)
	resp.OpenTab = &tabResp

	transactions, err := s.debtRepo.FindTransactionsByTabID(ctx, openTab.TabID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for tab %s: %w", openTab.TabID, err)
	}
	resp.Transactions = dto.ToDebtTransactionResponses(transactions)

	return resp, nil
}

// GetCustomerFullHistory returns all tabs and all transactions across tabs
// for one customer, ordered by transaction date then creation time.
func (s *debtService) GetCustomerFullHistory(ctx context.Context, customerID string) (*dto.CustomerDebtHistoryResponse, error) {
	customer, err := s.customerSvc.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	tabs, err := s.debtRepo.FindTabsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tabs for customer %s: %w", customerID, err)
	}

	transactions, err := s.debtRepo.FindTransactionsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for customer %s: %w", customerID, err)
	}

	return &dto.CustomerDebtHistoryResponse{
		Customer:     dto.ToCustomerResponse(customer),
		Tabs:         dto.ToTabResponses(tabs),
		Transactions: dto.ToDebtTransactionResponses(transactions),
	}, nil
}

// ListTransactions returns the global filtered, cursor-paginated listing.
func (s *debtService) ListTransactions(ctx context.Context, params dto.ListDebtTransactionsParams) (*dto.ListDebtTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.TransactionFilter{
		CustomerID:      params.CustomerID,
		TransactionType: domain.TransactionType(params.Type),
		TabStatus:       domain.TabStatus(params.TabStatus),
		DateFrom:        params.DateFrom,
		DateTo:          params.DateTo,
	}

	transactions, nextToken, err := s.debtRepo.ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListDebtTransactionsResponse{
		Transactions: dto.ToDebtTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
