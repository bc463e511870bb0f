package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/core/services"
	"github.com/crateworks/debt_ledger_app/internal/dto"
)

// --- Mock DebtRepository ---

// MockDebtRepository honours the MutateOpenTab contract: it hands the
// configured tab (a copy) to the mutator and returns whatever the mutator
// produced, so the engine's balance logic runs for real in these tests.
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) MutateOpenTab(ctx context.Context, customerID string, createIfMissing bool, fn portsrepo.TabMutator) (*domain.DebtTransaction, *domain.DebtTab, error) {
	args := m.Called(ctx, customerID, createIfMissing)
	if err := args.Error(1); err != nil {
		return nil, nil, err
	}

	var tab *domain.DebtTab
	if args.Get(0) != nil {
		copied := *args.Get(0).(*domain.DebtTab)
		tab = &copied
	} else {
		if !createIfMissing {
			return nil, nil, apperrors.ErrNotFound
		}
		now := time.Now().UTC()
		tab = &domain.DebtTab{
			TabID:        uuid.NewString(),
			CustomerID:   customerID,
			Status:       domain.TabOpen,
			TotalBalance: decimal.Zero,
			OpenedAt:     now,
		}
	}

	txn, err := fn(ctx, tab)
	if err != nil {
		return nil, nil, err
	}
	if txn != nil {
		txn.DebtTabID = tab.TabID
	}
	return txn, tab, nil
}

func (m *MockDebtRepository) FindTabByID(ctx context.Context, tabID string) (*domain.DebtTab, error) {
	args := m.Called(ctx, tabID)
	var tab *domain.DebtTab
	if args.Get(0) != nil {
		tab = args.Get(0).(*domain.DebtTab)
	}
	return tab, args.Error(1)
}

func (m *MockDebtRepository) FindOpenTabByCustomerID(ctx context.Context, customerID string) (*domain.DebtTab, error) {
	args := m.Called(ctx, customerID)
	var tab *domain.DebtTab
	if args.Get(0) != nil {
		tab = args.Get(0).(*domain.DebtTab)
	}
	return tab, args.Error(1)
}

func (m *MockDebtRepository) FindTabsByCustomerID(ctx context.Context, customerID string) ([]domain.DebtTab, error) {
	args := m.Called(ctx, customerID)
	var tabs []domain.DebtTab
	if args.Get(0) != nil {
		tabs = args.Get(0).([]domain.DebtTab)
	}
	return tabs, args.Error(1)
}

func (m *MockDebtRepository) FindTransactionsByTabID(ctx context.Context, tabID string) ([]domain.DebtTransaction, error) {
	args := m.Called(ctx, tabID)
	var txns []domain.DebtTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.DebtTransaction)
	}
	return txns, args.Error(1)
}

func (m *MockDebtRepository) FindTransactionsByCustomerID(ctx context.Context, customerID string) ([]domain.DebtTransaction, error) {
	args := m.Called(ctx, customerID)
	var txns []domain.DebtTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.DebtTransaction)
	}
	return txns, args.Error(1)
}

func (m *MockDebtRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.DebtTransaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var txns []domain.DebtTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.DebtTransaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

// --- Mock CustomerReaderSvc ---

type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	var customer *domain.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*domain.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerReader) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	args := m.Called(ctx, params)
	var resp *dto.ListCustomersResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*dto.ListCustomersResponse)
	}
	return resp, args.Error(1)
}

// --- Mock UnitPriceResolver ---

type MockPriceResolver struct {
	mock.Mock
}

func (m *MockPriceResolver) ResolveUnitPrice(ctx context.Context, customer *domain.Customer) (decimal.Decimal, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock AuditSvcFacade ---

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, action domain.AuditAction, entityType string, entityID string, details map[string]any, actorID string) {
	m.Called(ctx, action, entityType, entityID, details, actorID)
}

func (m *MockAuditService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	args := m.Called(ctx, params)
	var resp *dto.ListAuditLogsResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*dto.ListAuditLogsResponse)
	}
	return resp, args.Error(1)
}

// --- Suite ---

type DebtServiceTestSuite struct {
	suite.Suite
	mockDebtRepo    *MockDebtRepository
	mockCustomerSvc *MockCustomerReader
	mockPriceSvc    *MockPriceResolver
	mockAuditSvc    *MockAuditService
	service         portssvc.DebtSvcFacade

	customerID string
	actorID    string
	customer   *domain.Customer
	date       time.Time
}

func (s *DebtServiceTestSuite) SetupTest() {
	s.mockDebtRepo = new(MockDebtRepository)
	s.mockCustomerSvc = new(MockCustomerReader)
	s.mockPriceSvc = new(MockPriceResolver)
	s.mockAuditSvc = new(MockAuditService)
	s.service = services.NewDebtService(s.mockDebtRepo, s.mockCustomerSvc, s.mockPriceSvc, s.mockAuditSvc)

	s.customerID = uuid.NewString()
	s.actorID = uuid.NewString()
	s.customer = &domain.Customer{CustomerID: s.customerID, Name: "Ravi Stores", IsActive: true}
	s.date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Audit writes are fire-and-forget; allow them in every test.
	s.mockAuditSvc.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
}

func (s *DebtServiceTestSuite) openTab(balance string) *domain.DebtTab {
	return &domain.DebtTab{
		TabID:        uuid.NewString(),
		CustomerID:   s.customerID,
		Status:       domain.TabOpen,
		TotalBalance: decimal.RequireFromString(balance),
		OpenedAt:     s.date.Add(-24 * time.Hour),
	}
}

func (s *DebtServiceTestSuite) chargeCmd(containers int64) portssvc.ChargeCommand {
	return portssvc.ChargeCommand{
		CustomerID:      s.customerID,
		Containers:      containers,
		TransactionDate: s.date,
		ActorID:         s.actorID,
	}
}

func (s *DebtServiceTestSuite) TestRecordCharge_CreatesTabWhenNoneOpen() {
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockPriceSvc.On("ResolveUnitPrice", mock.Anything, s.customer).Return(decimal.RequireFromString("23.00"), nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, true).Return(nil, nil)

	result, err := s.service.RecordCharge(context.Background(), s.chargeCmd(5))

	s.Require().NoError(err)
	s.Require().NotNil(result.Transaction)
	s.Equal(domain.Charge, result.Transaction.TransactionType)
	s.True(result.Transaction.Amount.Equal(decimal.RequireFromString("115.00")))
	s.True(result.Transaction.BalanceAfter.Equal(decimal.RequireFromString("115.00")))
	s.Require().NotNil(result.Transaction.Containers)
	s.Equal(int64(5), *result.Transaction.Containers)
	s.Require().NotNil(result.Transaction.UnitPrice)
	s.True(result.Transaction.UnitPrice.Equal(decimal.RequireFromString("23.00")))

	s.Equal(domain.TabOpen, result.Tab.Status)
	s.True(result.Tab.TotalBalance.Equal(decimal.RequireFromString("115.00")))
	s.Equal(result.Tab.TabID, result.Transaction.DebtTabID)
	s.NoError(result.Transaction.Validate())
}

func (s *DebtServiceTestSuite) TestRecordCharge_AppendsToExistingTab() {
	tab := s.openTab("100.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockPriceSvc.On("ResolveUnitPrice", mock.Anything, s.customer).Return(decimal.RequireFromString("20.00"), nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, true).Return(tab, nil)

	result, err := s.service.RecordCharge(context.Background(), s.chargeCmd(3))

	s.Require().NoError(err)
	s.True(result.Transaction.BalanceAfter.Equal(decimal.RequireFromString("160.00")))
	s.True(result.Tab.TotalBalance.Equal(decimal.RequireFromString("160.00")))
	s.Equal(tab.TabID, result.Tab.TabID)
}

func (s *DebtServiceTestSuite) TestRecordCharge_RejectsNonPositiveContainers() {
	_, err := s.service.RecordCharge(context.Background(), s.chargeCmd(0))
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockDebtRepo.AssertNotCalled(s.T(), "MutateOpenTab", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DebtServiceTestSuite) TestRecordCharge_RejectsInactiveCustomer() {
	inactive := &domain.Customer{CustomerID: s.customerID, Name: "Closed Shop", IsActive: false}
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(inactive, nil)

	_, err := s.service.RecordCharge(context.Background(), s.chargeCmd(2))

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockDebtRepo.AssertNotCalled(s.T(), "MutateOpenTab", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DebtServiceTestSuite) TestRecordCharge_PropagatesMissingPriceConfiguration() {
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockPriceSvc.On("ResolveUnitPrice", mock.Anything, s.customer).Return(decimal.Zero, apperrors.ErrConfiguration)

	_, err := s.service.RecordCharge(context.Background(), s.chargeCmd(2))

	s.ErrorIs(err, apperrors.ErrConfiguration)
}

func (s *DebtServiceTestSuite) paymentCmd(amount string) portssvc.PaymentCommand {
	return portssvc.PaymentCommand{
		CustomerID:      s.customerID,
		Amount:          decimal.RequireFromString(amount),
		TransactionDate: s.date,
		ActorID:         s.actorID,
	}
}

func (s *DebtServiceTestSuite) TestRecordPayment_PartialKeepsTabOpen() {
	tab := s.openTab("115.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	result, err := s.service.RecordPayment(context.Background(), s.paymentCmd("40.00"))

	s.Require().NoError(err)
	s.Equal(domain.Payment, result.Transaction.TransactionType)
	s.True(result.Transaction.BalanceAfter.Equal(decimal.RequireFromString("75.00")))
	s.Equal(domain.TabOpen, result.Tab.Status)
	s.Nil(result.Tab.ClosedAt)
}

func (s *DebtServiceTestSuite) TestRecordPayment_FullPaymentClosesTab() {
	tab := s.openTab("115.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	result, err := s.service.RecordPayment(context.Background(), s.paymentCmd("115.00"))

	s.Require().NoError(err)
	s.True(result.Transaction.BalanceAfter.IsZero())
	s.Equal(domain.TabClosed, result.Tab.Status)
	s.Require().NotNil(result.Tab.ClosedAt)
	s.True(result.Tab.TotalBalance.IsZero())
}

func (s *DebtServiceTestSuite) TestRecordPayment_RejectsOverpayment() {
	tab := s.openTab("100.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	_, err := s.service.RecordPayment(context.Background(), s.paymentCmd("150.00"))

	s.ErrorIs(err, services.ErrOverpayment)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *DebtServiceTestSuite) TestRecordPayment_NoOpenTab() {
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(nil, nil)

	_, err := s.service.RecordPayment(context.Background(), s.paymentCmd("10.00"))

	s.ErrorIs(err, services.ErrNoOpenTab)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *DebtServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	_, err := s.service.RecordPayment(context.Background(), s.paymentCmd("0"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *DebtServiceTestSuite) adjustmentCmd(amount, reason string) portssvc.AdjustmentCommand {
	return portssvc.AdjustmentCommand{
		CustomerID:      s.customerID,
		Amount:          decimal.RequireFromString(amount),
		Reason:          reason,
		TransactionDate: s.date,
		ActorID:         s.actorID,
	}
}

func (s *DebtServiceTestSuite) TestRecordAdjustment_NegativeAdjustmentReducesBalance() {
	tab := s.openTab("115.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	result, err := s.service.RecordAdjustment(context.Background(), s.adjustmentCmd("-15.00", "two bottles returned broken"))

	s.Require().NoError(err)
	s.Equal(domain.Adjustment, result.Transaction.TransactionType)
	s.True(result.Transaction.Amount.Equal(decimal.RequireFromString("-15.00")))
	s.True(result.Tab.TotalBalance.Equal(decimal.RequireFromString("100.00")))
	s.Equal("two bottles returned broken", result.Transaction.AdjustmentReason)
}

func (s *DebtServiceTestSuite) TestRecordAdjustment_ToZeroLeavesTabOpen() {
	tab := s.openTab("50.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	result, err := s.service.RecordAdjustment(context.Background(), s.adjustmentCmd("-50.00", "goodwill waiver"))

	s.Require().NoError(err)
	s.True(result.Tab.TotalBalance.IsZero())
	s.Equal(domain.TabOpen, result.Tab.Status)
	s.Nil(result.Tab.ClosedAt)
}

func (s *DebtServiceTestSuite) TestRecordAdjustment_RejectsNegativeResultingBalance() {
	tab := s.openTab("30.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	_, err := s.service.RecordAdjustment(context.Background(), s.adjustmentCmd("-50.00", "overcredit"))

	s.ErrorIs(err, services.ErrNegativeBalance)
}

func (s *DebtServiceTestSuite) TestRecordAdjustment_RejectsBlankReason() {
	_, err := s.service.RecordAdjustment(context.Background(), s.adjustmentCmd("-10.00", "   "))
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockDebtRepo.AssertNotCalled(s.T(), "MutateOpenTab", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DebtServiceTestSuite) TestRecordAdjustment_RejectsZeroAmount() {
	_, err := s.service.RecordAdjustment(context.Background(), s.adjustmentCmd("0", "noop"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *DebtServiceTestSuite) TestMarkPaid_WithFinalPaymentClosesTab() {
	tab := s.openTab("80.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	final := decimal.RequireFromString("80.00")
	result, err := s.service.MarkPaid(context.Background(), portssvc.MarkPaidCommand{
		CustomerID:      s.customerID,
		TransactionDate: s.date,
		FinalPayment:    &final,
		ActorID:         s.actorID,
	})

	s.Require().NoError(err)
	s.Require().NotNil(result.Transaction)
	s.Equal(domain.Payment, result.Transaction.TransactionType)
	s.True(result.Transaction.BalanceAfter.IsZero())
	s.Equal(domain.TabClosed, result.Tab.Status)
	s.Require().NotNil(result.Tab.ClosedAt)
}

func (s *DebtServiceTestSuite) TestMarkPaid_ZeroBalanceNeedsNoPayment() {
	tab := s.openTab("0")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	result, err := s.service.MarkPaid(context.Background(), portssvc.MarkPaidCommand{
		CustomerID:      s.customerID,
		TransactionDate: s.date,
		ActorID:         s.actorID,
	})

	s.Require().NoError(err)
	s.Nil(result.Transaction)
	s.Equal(domain.TabClosed, result.Tab.Status)
}

func (s *DebtServiceTestSuite) TestMarkPaid_RejectsNonZeroRemainingBalance() {
	tab := s.openTab("25.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	_, err := s.service.MarkPaid(context.Background(), portssvc.MarkPaidCommand{
		CustomerID:      s.customerID,
		TransactionDate: s.date,
		ActorID:         s.actorID,
	})

	s.ErrorIs(err, services.ErrNonZeroClose)
}

func (s *DebtServiceTestSuite) TestMarkPaid_RejectsFinalPaymentExceedingBalance() {
	tab := s.openTab("50.00")
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(tab, nil)

	final := decimal.RequireFromString("60.00")
	_, err := s.service.MarkPaid(context.Background(), portssvc.MarkPaidCommand{
		CustomerID:      s.customerID,
		TransactionDate: s.date,
		FinalPayment:    &final,
		ActorID:         s.actorID,
	})

	s.ErrorIs(err, services.ErrOverpayment)
}

func (s *DebtServiceTestSuite) TestChargeAfterClosureOpensFreshTab() {
	// First charge opens a tab, full payment closes it, the next charge
	// must land on a brand new tab with a clean balance.
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockPriceSvc.On("ResolveUnitPrice", mock.Anything, s.customer).Return(decimal.RequireFromString("23.00"), nil)

	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, true).Return(nil, nil).Once()
	first, err := s.service.RecordCharge(context.Background(), s.chargeCmd(5))
	s.Require().NoError(err)

	paidTab := *first.Tab
	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, false).Return(&paidTab, nil).Once()
	closed, err := s.service.RecordPayment(context.Background(), s.paymentCmd("115.00"))
	s.Require().NoError(err)
	s.Equal(domain.TabClosed, closed.Tab.Status)

	s.mockDebtRepo.On("MutateOpenTab", mock.Anything, s.customerID, true).Return(nil, nil).Once()
	second, err := s.service.RecordCharge(context.Background(), s.chargeCmd(2))
	s.Require().NoError(err)

	s.NotEqual(first.Tab.TabID, second.Tab.TabID)
	s.True(second.Tab.TotalBalance.Equal(decimal.RequireFromString("46.00")))
	s.Equal(domain.TabOpen, second.Tab.Status)
}

func (s *DebtServiceTestSuite) TestGetCustomerSnapshot_WithOpenTab() {
	tab := s.openTab("75.00")
	txns := []domain.DebtTransaction{
		{TransactionID: "t1", DebtTabID: tab.TabID, TransactionType: domain.Charge, Amount: decimal.RequireFromString("115.00"), BalanceAfter: decimal.RequireFromString("115.00")},
		{TransactionID: "t2", DebtTabID: tab.TabID, TransactionType: domain.Payment, Amount: decimal.RequireFromString("40.00"), BalanceAfter: decimal.RequireFromString("75.00")},
	}
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("FindOpenTabByCustomerID", mock.Anything, s.customerID).Return(tab, nil)
	s.mockDebtRepo.On("FindTransactionsByTabID", mock.Anything, tab.TabID).Return(txns, nil)

	resp, err := s.service.GetCustomerSnapshot(context.Background(), s.customerID)

	s.Require().NoError(err)
	s.Require().NotNil(resp.OpenTab)
	s.Equal(tab.TabID, resp.OpenTab.TabID)
	s.Len(resp.Transactions, 2)
	s.Equal(s.customer.Name, resp.Customer.Name)
}

func (s *DebtServiceTestSuite) TestGetCustomerSnapshot_NoOpenTab() {
	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("FindOpenTabByCustomerID", mock.Anything, s.customerID).Return(nil, apperrors.ErrNotFound)

	resp, err := s.service.GetCustomerSnapshot(context.Background(), s.customerID)

	s.Require().NoError(err)
	s.Nil(resp.OpenTab)
	s.Empty(resp.Transactions)
}

func (s *DebtServiceTestSuite) TestGetCustomerFullHistory() {
	openTab := s.openTab("46.00")
	closedAt := s.date
	closedTab := &domain.DebtTab{TabID: uuid.NewString(), CustomerID: s.customerID, Status: domain.TabClosed, TotalBalance: decimal.Zero, ClosedAt: &closedAt}
	tabs := []domain.DebtTab{*openTab, *closedTab}
	txns := []domain.DebtTransaction{
		{TransactionID: "t1", DebtTabID: closedTab.TabID, TransactionType: domain.Charge, Amount: decimal.RequireFromString("115.00")},
		{TransactionID: "t2", DebtTabID: closedTab.TabID, TransactionType: domain.Payment, Amount: decimal.RequireFromString("115.00")},
		{TransactionID: "t3", DebtTabID: openTab.TabID, TransactionType: domain.Charge, Amount: decimal.RequireFromString("46.00")},
	}

	s.mockCustomerSvc.On("GetCustomerByID", mock.Anything, s.customerID).Return(s.customer, nil)
	s.mockDebtRepo.On("FindTabsByCustomerID", mock.Anything, s.customerID).Return(tabs, nil)
	s.mockDebtRepo.On("FindTransactionsByCustomerID", mock.Anything, s.customerID).Return(txns, nil)

	resp, err := s.service.GetCustomerFullHistory(context.Background(), s.customerID)

	s.Require().NoError(err)
	s.Len(resp.Tabs, 2)
	s.Len(resp.Transactions, 3)
}

func (s *DebtServiceTestSuite) TestListTransactions_AppliesDefaultLimit() {
	s.mockDebtRepo.On("ListTransactions", mock.Anything, mock.Anything, 20, (*string)(nil)).Return([]domain.DebtTransaction{}, nil, nil)

	resp, err := s.service.ListTransactions(context.Background(), dto.ListDebtTransactionsParams{})

	s.Require().NoError(err)
	s.Empty(resp.Transactions)
	s.Nil(resp.NextToken)
}

func (s *DebtServiceTestSuite) TestListTransactions_CarriesCustomerContext() {
	rows := []domain.DebtTransaction{
		{
			TransactionID:   uuid.NewString(),
			DebtTabID:       uuid.NewString(),
			TransactionType: domain.Payment,
			Amount:          decimal.RequireFromString("40.00"),
			BalanceAfter:    decimal.RequireFromString("75.00"),
			TransactionDate: s.date,
			CustomerID:      s.customerID,
			CustomerName:    "Ana Pereira",
			TabStatus:       domain.TabOpen,
		},
	}
	s.mockDebtRepo.On("ListTransactions", mock.Anything, mock.Anything, 20, (*string)(nil)).Return(rows, nil, nil)

	resp, err := s.service.ListTransactions(context.Background(), dto.ListDebtTransactionsParams{})

	s.Require().NoError(err)
	s.Require().Len(resp.Transactions, 1)
	s.Equal(s.customerID, resp.Transactions[0].CustomerID)
	s.Equal("Ana Pereira", resp.Transactions[0].CustomerName)
	s.Equal(string(domain.TabOpen), resp.Transactions[0].TabStatus)
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
