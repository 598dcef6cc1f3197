package dto

import "github.com/shopspring/decimal"

// SaleLineRequest línea de venta (producto, cantidad, precio unitario).
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales.
// CustomerID nulo = venta de contado (no toca la cuenta corriente).
type CreateSaleRequest struct {
	CustomerID *string           `json:"customer_id,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	Lines      []SaleLineRequest `json:"lines"`
}

// SaleLineResponse línea en la respuesta.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con detalle.
type SaleResponse struct {
	ID         string             `json:"id"`
	CustomerID *string            `json:"customer_id,omitempty"`
	Total      decimal.Decimal    `json:"total"`
	Notes      string             `json:"notes,omitempty"`
	Date       string             `json:"date"`
	Lines      []SaleLineResponse `json:"lines"`
}
