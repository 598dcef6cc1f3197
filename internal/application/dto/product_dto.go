package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Stock            int64           `json:"stock"`
	ReorderThreshold int64           `json:"reorder_threshold"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// No incluye stock: el stock solo lo mueve el coordinador de ventas.
type UpdateProductRequest struct {
	Name             string          `json:"name"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	Active           *bool           `json:"active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Stock            int64           `json:"stock"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	BelowReorder     bool            `json:"below_reorder"`
	Active           bool            `json:"active"`
}
