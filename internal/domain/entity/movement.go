package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de la cuenta corriente.
const (
	MovementCharge  = "CHARGE"  // cargo por venta a crédito
	MovementPayment = "PAYMENT" // abono del cliente
)

// Movement es una entrada inmutable del historial de la cuenta.
// SaleID queda vacío en abonos; en cargos referencia la venta que lo originó.
type Movement struct {
	ID          int64
	CustomerID  string
	Kind        string
	Amount      decimal.Decimal // siempre positivo; el signo lo da Kind
	Description string
	SaleID      *string
	CreatedAt   time.Time
}
