package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para cuentas corrientes.
// GetByCustomerForUpdate bloquea la fila (SELECT FOR UPDATE): toda lectura-modificación
// de saldos debe pasar por ella dentro de una transacción.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByCustomer(customerID string) (*entity.Account, error)
	GetByCustomerForUpdate(customerID string) (*entity.Account, error)
	UpdateBalances(id string, totalDebt, pendingBalance decimal.Decimal, lastUpdated time.Time) error
	Delete(id string) error
	ListWithPendingBalance() ([]*entity.AccountSummary, error)
}
