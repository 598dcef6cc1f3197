package domain

import (
	"fmt"
	"strings"
)

// LineFault describe el problema de una línea concreta de la venta.
type LineFault struct {
	Index     int    `json:"index"`
	ProductID string `json:"product_id,omitempty"`
	Reason    string `json:"reason"`
}

// SaleValidationError agrupa los fallos de validación por línea de una venta.
// La venta nunca se persiste parcialmente: si hay al menos una falla, no se muta nada.
type SaleValidationError struct {
	Faults []LineFault
}

// Error implementa error con un resumen legible de todas las líneas rechazadas.
func (e *SaleValidationError) Error() string {
	if len(e.Faults) == 0 {
		return "venta inválida"
	}
	parts := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		parts = append(parts, fmt.Sprintf("línea %d: %s", f.Index, f.Reason))
	}
	return "venta inválida: " + strings.Join(parts, "; ")
}

// Add registra una falla para la línea indicada.
func (e *SaleValidationError) Add(index int, productID, reason string) {
	e.Faults = append(e.Faults, LineFault{Index: index, ProductID: productID, Reason: reason})
}

// HasFaults indica si se registró alguna falla.
func (e *SaleValidationError) HasFaults() bool {
	return len(e.Faults) > 0
}
