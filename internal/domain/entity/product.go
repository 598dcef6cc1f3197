package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (perfumería).
// Stock es unidades en mano; solo lo muta el coordinador de ventas.
type Product struct {
	ID               string
	SKU              string // código único
	Name             string
	PurchasePrice    decimal.Decimal
	SalePrice        decimal.Decimal
	Stock            int64 // nunca negativo
	ReorderThreshold int64
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BelowReorder indica si el stock está en o bajo el punto de reorden.
func (p *Product) BelowReorder() bool {
	return p.Stock <= p.ReorderThreshold
}
