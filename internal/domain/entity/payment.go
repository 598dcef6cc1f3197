package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados para abonos.
const (
	PaymentMethodCash     = "EFECTIVO"
	PaymentMethodTransfer = "TRANSFERENCIA"
	PaymentMethodCheck    = "CHEQUE"
	PaymentMethodCard     = "TARJETA"
)

// IsValidPaymentMethod valida el método contra el catálogo.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCheck, PaymentMethodCard:
		return true
	}
	return false
}

// Payment es un abono registrado sobre la cuenta de un cliente.
// ReceiptNumber (ABO-YYYYMMDD-NNNN) es de cortesía para el comprobante impreso;
// la unicidad no la garantiza el almacén.
type Payment struct {
	ID            int64
	CustomerID    string
	Amount        decimal.Decimal
	Method        string
	Description   string
	ReceiptNumber string
	CreatedAt     time.Time
}
