package dto

import (
	"time"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ChargeRequest records a container sale on credit.
type ChargeRequest struct {
	Containers      int64     `json:"containers" binding:"required,gt=0"`
	TransactionDate time.Time `json:"transactionDate" binding:"required"`
	Notes           string    `json:"notes"`
}

// PaymentRequest records a customer payment against the open tab.
type PaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Notes           string          `json:"notes"`
}

// AdjustmentRequest records a manual balance correction. Amount may be
// negative (credit) or positive (correction), never zero.
type AdjustmentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Reason          string          `json:"reason" binding:"required"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Notes           string          `json:"notes"`
}

// MarkPaidRequest closes the open tab, optionally after one final payment.
type MarkPaidRequest struct {
	TransactionDate time.Time        `json:"transactionDate" binding:"required"`
	FinalPayment    *decimal.Decimal `json:"finalPayment"`
	Notes           string           `json:"notes"`
}

// TabResponse defines the data returned for a debt tab.
type TabResponse struct {
	TabID        string          `json:"tabID"`
	CustomerID   string          `json:"customerID"`
	Status       string          `json:"status"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	OpenedAt     time.Time       `json:"openedAt"`
	ClosedAt     *time.Time      `json:"closedAt,omitempty"`
}

// DebtTransactionResponse defines the data returned for a ledger entry.
type DebtTransactionResponse struct {
	TransactionID    string           `json:"transactionID"`
	DebtTabID        string           `json:"debtTabID"`
	Type             string           `json:"type"`
	Containers       *int64           `json:"containers,omitempty"`
	UnitPrice        *decimal.Decimal `json:"unitPrice,omitempty"`
	Amount           decimal.Decimal  `json:"amount"`
	BalanceAfter     decimal.Decimal  `json:"balanceAfter"`
	AdjustmentReason string           `json:"adjustmentReason,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	TransactionDate  time.Time        `json:"transactionDate"`
	EnteredBy        string           `json:"enteredBy"`
	CreatedAt        time.Time        `json:"createdAt"`

	// Only set on the global listing, where rows carry their tab and
	// customer context.
	CustomerID   string `json:"customerID,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
	TabStatus    string `json:"tabStatus,omitempty"`
}

// DebtOperationResponse is the result of every ledger mutation. Transaction
// is null for a mark-paid that needed no final payment.
type DebtOperationResponse struct {
	Transaction *DebtTransactionResponse `json:"transaction"`
	Tab         TabResponse              `json:"tab"`
}

// CustomerDebtSnapshotResponse is the current-state view of one customer.
type CustomerDebtSnapshotResponse struct {
	Customer     CustomerResponse          `json:"customer"`
	OpenTab      *TabResponse              `json:"openTab"`
	Transactions []DebtTransactionResponse `json:"transactions"`
}

// CustomerDebtHistoryResponse is the everything view of one customer.
type CustomerDebtHistoryResponse struct {
	Customer     CustomerResponse          `json:"customer"`
	Tabs         []TabResponse             `json:"tabs"`
	Transactions []DebtTransactionResponse `json:"transactions"`
}

// ListDebtTransactionsParams defines query parameters for the global listing.
type ListDebtTransactionsParams struct {
	CustomerID string     `form:"customerID"`
	Type       string     `form:"type" binding:"omitempty,oneof=CHARGE PAYMENT ADJUSTMENT"`
	TabStatus  string     `form:"tabStatus" binding:"omitempty,oneof=OPEN CLOSED"`
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=20"`
	NextToken  *string    `form:"nextToken"`
}

// ListDebtTransactionsResponse wraps a page of the global listing.
type ListDebtTransactionsResponse struct {
	Transactions []DebtTransactionResponse `json:"transactions"`
	NextToken    *string                   `json:"nextToken,omitempty"`
}

// ToTabResponse converts a domain.DebtTab to TabResponse DTO.
func ToTabResponse(t *domain.DebtTab) TabResponse {
	return TabResponse{
		TabID:        t.TabID,
		CustomerID:   t.CustomerID,
		Status:       string(t.Status),
		TotalBalance: t.TotalBalance,
		OpenedAt:     t.OpenedAt,
		ClosedAt:     t.ClosedAt,
	}
}

// ToTabResponses converts a slice of domain.DebtTab to []TabResponse.
func ToTabResponses(tabs []domain.DebtTab) []TabResponse {
	responses := make([]TabResponse, len(tabs))
	for i := range tabs {
		responses[i] = ToTabResponse(&tabs[i])
	}
	return responses
}

// ToDebtTransactionResponse converts a domain.DebtTransaction to its DTO.
func ToDebtTransactionResponse(txn *domain.DebtTransaction) DebtTransactionResponse {
	return DebtTransactionResponse{
		TransactionID:    txn.TransactionID,
		DebtTabID:        txn.DebtTabID,
		Type:             string(txn.TransactionType),
		Containers:       txn.Containers,
		UnitPrice:        txn.UnitPrice,
		Amount:           txn.Amount,
		BalanceAfter:     txn.BalanceAfter,
		AdjustmentReason: txn.AdjustmentReason,
		Notes:            txn.Notes,
		TransactionDate:  txn.TransactionDate,
		EnteredBy:        txn.CreatedBy,
		CreatedAt:        txn.CreatedAt,
		CustomerID:       txn.CustomerID,
		CustomerName:     txn.CustomerName,
		TabStatus:        string(txn.TabStatus),
	}
}

// ToDebtTransactionResponses converts a slice of domain transactions to DTOs.
func ToDebtTransactionResponses(txns []domain.DebtTransaction) []DebtTransactionResponse {
	responses := make([]DebtTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToDebtTransactionResponse(&txns[i])
	}
	return responses
}

// ToDebtOperationResponse builds the mutation result envelope.
func ToDebtOperationResponse(txn *domain.DebtTransaction, tab *domain.DebtTab) DebtOperationResponse {
	resp := DebtOperationResponse{Tab: ToTabResponse(tab)}
	if txn != nil {
		t := ToDebtTransactionResponse(txn)
		resp.Transaction = &t
	}
	return resp
}
