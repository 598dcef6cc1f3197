package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResponse saldos de la cuenta de un cliente.
type BalanceResponse struct {
	CustomerID     string          `json:"customer_id"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// MovementResponse entrada del historial de la cuenta.
type MovementResponse struct {
	ID          int64           `json:"id"`
	Kind        string          `json:"kind"` // CHARGE | PAYMENT
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	SaleID      *string         `json:"sale_id,omitempty"`
	Date        time.Time       `json:"date"`
}

// RegisterPaymentRequest body para POST /api/accounts/:customerId/payments.
type RegisterPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"` // EFECTIVO | TRANSFERENCIA | CHEQUE | TARJETA
	Description string          `json:"description,omitempty"`
}

// PaymentReceiptResponse comprobante devuelto al registrar un abono.
type PaymentReceiptResponse struct {
	ReceiptNumber  string          `json:"receipt_number"`
	CustomerID     string          `json:"customer_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	Date           string          `json:"date"`
}

// PaymentResponse abono en listados.
type PaymentResponse struct {
	ID            int64           `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Description   string          `json:"description,omitempty"`
	ReceiptNumber string          `json:"receipt_number"`
	Date          time.Time       `json:"date"`
}

// AccountSummaryResponse fila del tablero de cartera (cuentas con saldo pendiente).
type AccountSummaryResponse struct {
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// CleanupResponse resultado de la limpieza de cuenta en cero.
type CleanupResponse struct {
	Deleted bool `json:"deleted"`
}

// EnsureAccountResponse resultado de crear/asegurar la cuenta de un cliente.
type EnsureAccountResponse struct {
	AccountID  string `json:"account_id"`
	CustomerID string `json:"customer_id"`
}
