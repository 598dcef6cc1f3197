package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account es la cuenta corriente de un cliente (a lo sumo una activa por cliente).
// TotalDebt acumula los cargos históricos; PendingBalance es lo que debe hoy.
// Invariante: 0 <= PendingBalance <= TotalDebt. Los saldos son denormalizados y
// autoritativos; el historial en movements es solo pista de auditoría.
type Account struct {
	ID             string
	CustomerID     string
	TotalDebt      decimal.Decimal
	PendingBalance decimal.Decimal
	LastUpdated    time.Time
	Active         bool
}

// AccountSummary cuenta con datos del cliente para el tablero de cartera.
type AccountSummary struct {
	Account
	CustomerName string
}
