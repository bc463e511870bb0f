package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/dto"
	"github.com/crateworks/debt_ledger_app/internal/handlers"
	"github.com/crateworks/debt_ledger_app/pkg/config"
)

// --- Mock DebtService ---

type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) RecordCharge(ctx context.Context, cmd portssvc.ChargeCommand) (*portssvc.DebtOperationResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DebtOperationResult), args.Error(1)
}

func (m *MockDebtService) RecordPayment(ctx context.Context, cmd portssvc.PaymentCommand) (*portssvc.DebtOperationResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DebtOperationResult), args.Error(1)
}

func (m *MockDebtService) RecordAdjustment(ctx context.Context, cmd portssvc.AdjustmentCommand) (*portssvc.DebtOperationResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DebtOperationResult), args.Error(1)
}

func (m *MockDebtService) MarkPaid(ctx context.Context, cmd portssvc.MarkPaidCommand) (*portssvc.DebtOperationResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DebtOperationResult), args.Error(1)
}

func (m *MockDebtService) GetCustomerSnapshot(ctx context.Context, customerID string) (*dto.CustomerDebtSnapshotResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerDebtSnapshotResponse), args.Error(1)
}

func (m *MockDebtService) GetCustomerFullHistory(ctx context.Context, customerID string) (*dto.CustomerDebtHistoryResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerDebtHistoryResponse), args.Error(1)
}

func (m *MockDebtService) ListTransactions(ctx context.Context, params dto.ListDebtTransactionsParams) (*dto.ListDebtTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListDebtTransactionsResponse), args.Error(1)
}

var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

// --- Mock CustomerService ---

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCustomersResponse), args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) DeactivateCustomer(ctx context.Context, customerID string, deactivatorUserID string) error {
	args := m.Called(ctx, customerID, deactivatorUserID)
	return args.Error(0)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock UserService ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock AuthService ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock SettingsService ---

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingsService) SetSetting(ctx context.Context, key string, value string, updaterUserID string) (*domain.Setting, error) {
	args := m.Called(ctx, key, value, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingsService) GetGlobalUnitPrice(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

// --- Mock AuditService ---

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, action domain.AuditAction, entityType string, entityID string, details map[string]any, actorID string) {
	m.Called(ctx, action, entityType, entityID, details, actorID)
}

func (m *MockAuditService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditLogsResponse), args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Test Suite ---

type DebtHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockDebtService *MockDebtService
	jwtSecret       string
}

func (suite *DebtHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "dla-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *DebtHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockDebtService = new(MockDebtService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	container := &portssvc.ServiceContainer{
		Customer: new(MockCustomerService),
		Debt:     suite.mockDebtService,
		Settings: new(MockSettingsService),
		User:     new(MockUserService),
		Auth:     new(MockAuthService),
		Audit:    new(MockAuditService),
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *DebtHandlerTestSuite) doJSON(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func operationResult(customerID string, balance string) *portssvc.DebtOperationResult {
	tab := &domain.DebtTab{
		TabID:        uuid.NewString(),
		CustomerID:   customerID,
		Status:       domain.TabOpen,
		TotalBalance: decimal.RequireFromString(balance),
		OpenedAt:     time.Now().UTC(),
	}
	txn := &domain.DebtTransaction{
		TransactionID:   uuid.NewString(),
		DebtTabID:       tab.TabID,
		TransactionType: domain.Charge,
		Amount:          decimal.RequireFromString(balance),
		BalanceAfter:    tab.TotalBalance,
		TransactionDate: time.Now().UTC(),
	}
	return &portssvc.DebtOperationResult{Transaction: txn, Tab: tab}
}

func (suite *DebtHandlerTestSuite) TestRecordCharge_Success() {
	customerID := uuid.NewString()
	actorID := uuid.NewString()
	expected := operationResult(customerID, "115.00")

	suite.mockDebtService.On("RecordCharge",
		mock.Anything,
		mock.MatchedBy(func(cmd portssvc.ChargeCommand) bool {
			return cmd.CustomerID == customerID && cmd.Containers == 5 && cmd.ActorID == actorID
		}),
	).Return(expected, nil).Once()

	body := gin.H{"containers": 5, "transactionDate": "2025-06-01T00:00:00Z"}
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/"+customerID+"/debt/charges", body, suite.generateTestToken(actorID))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.DebtOperationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Transaction)
	suite.Equal(expected.Transaction.TransactionID, resp.Transaction.TransactionID)
	suite.True(resp.Tab.TotalBalance.Equal(decimal.RequireFromString("115.00")))
	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestRecordCharge_MissingToken() {
	customerID := uuid.NewString()
	body := gin.H{"containers": 5, "transactionDate": "2025-06-01T00:00:00Z"}

	w := suite.doJSON(http.MethodPost, "/api/v1/customers/"+customerID+"/debt/charges", body, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDebtService.AssertNotCalled(suite.T(), "RecordCharge", mock.Anything, mock.Anything)
}

func (suite *DebtHandlerTestSuite) TestRecordCharge_RejectsZeroContainers() {
	customerID := uuid.NewString()
	body := gin.H{"containers": 0, "transactionDate": "2025-06-01T00:00:00Z"}

	w := suite.doJSON(http.MethodPost, "/api/v1/customers/"+customerID+"/debt/charges", body, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDebtService.AssertNotCalled(suite.T(), "RecordCharge", mock.Anything, mock.Anything)
}

func (suite *DebtHandlerTestSuite) TestRecordCharge_MissingPriceConfigurationMapsToServerError() {
	customerID := uuid.NewString()
	noPrice := fmt.Errorf("%w: unit price is not configured", apperrors.ErrConfiguration)

	suite.mockDebtService.On("RecordCharge", mock.Anything, mock.Anything).Return(nil, noPrice).Once()

	body := gin.H{"containers": 3, "transactionDate": "2025-06-01T00:00:00Z"}
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/"+customerID+"/debt/charges", body, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *DebtHandlerTestSuite) TestRecordPayment_OverpaymentMapsToBadRequest() {
	customerID := uuid.NewString()
	overpayment := fmt.Errorf("%w: overpayment not allowed", apperrors.ErrValidation)

	suite.mockDebtService.On("RecordPayment", mock.Anything, mock.Anything).Return(nil, overpayment).Once()

	body := gin.H{"amount": "150.00", "transactionDate": "2025-06-01T00:00:00Z"}
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/"+customerID+"/debt/payments", body, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DebtHandlerTestSuite) TestRecordPayment_NoOpenTabMapsToNotFound() {
	customerID := uuid.NewString()
	noTab := fmt.Errorf("%w: customer has no open tab", apperrors.ErrNotFound)

	suite.mockDebtService.On("RecordPayment", mock.Anything, mock.Anything).Return(nil, noTab).Once()

	body := gin.H{"amount": "10.00", "transactionDate": "2025-06-01T00:00:00Z"}
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/"+customerID+"/debt/payments", body, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DebtHandlerTestSuite) TestMarkPaid_NoFinalPaymentReturnsNullTransaction() {
	customerID := uuid.NewString()
	closedAt := time.Now().UTC()
	result := &portssvc.DebtOperationResult{
		Tab: &domain.DebtTab{
			TabID:        uuid.NewString(),
			CustomerID:   customerID,
			Status:       domain.TabClosed,
			TotalBalance: decimal.Zero,
			OpenedAt:     closedAt.Add(-48 * time.Hour),
			ClosedAt:     &closedAt,
		},
	}

	suite.mockDebtService.On("MarkPaid", mock.Anything, mock.Anything).Return(result, nil).Once()

	body := gin.H{"transactionDate": "2025-06-01T00:00:00Z"}
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/"+customerID+"/debt/mark-paid", body, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DebtOperationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Nil(resp.Transaction)
	suite.Equal(string(domain.TabClosed), resp.Tab.Status)
}

func (suite *DebtHandlerTestSuite) TestGetSnapshot_CustomerNotFound() {
	customerID := uuid.NewString()
	suite.mockDebtService.On("GetCustomerSnapshot", mock.Anything, customerID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/customers/"+customerID+"/debt", nil, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DebtHandlerTestSuite) TestListTransactions_PassesQueryParams() {
	expected := &dto.ListDebtTransactionsResponse{Transactions: []dto.DebtTransactionResponse{}}

	suite.mockDebtService.On("ListTransactions",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListDebtTransactionsParams) bool {
			return p.Type == "PAYMENT" && p.Limit == 10
		}),
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/debt/transactions?type=PAYMENT&limit=10", nil, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDebtService.AssertExpectations(suite.T())
}

func TestDebtHandler(t *testing.T) {
	suite.Run(t, new(DebtHandlerTestSuite))
}
