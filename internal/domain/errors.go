package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrCustomerNotFound     = errors.New("cliente no encontrado")
	ErrAccountNotFound      = errors.New("el cliente no tiene cuenta activa")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidAmount        = errors.New("el monto debe ser mayor que cero")
	ErrAmountExceedsBalance = errors.New("el abono supera el saldo pendiente")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidPaymentMethod = errors.New("método de pago inválido")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
)
