package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es la cabecera de una venta. CustomerID nulo = venta de contado
// (sin impacto en la cuenta corriente). Total = suma de subtotales de líneas.
type Sale struct {
	ID         string
	CustomerID *string
	Total      decimal.Decimal
	Notes      string
	CreatedAt  time.Time
}

// SaleLine línea de venta: cantidad entera de un producto a un precio unitario.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice
}
