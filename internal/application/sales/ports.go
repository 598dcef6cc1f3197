package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repositorios
// de venta, producto y cartera atados a esa tx. Es la garantía estructural de que
// venta + stock + cargo en cuenta caen o quedan juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		sales repository.SaleRepository,
		products repository.ProductRepository,
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
	) error) error
}

// Ledger interfaz para integrar ventas con la cuenta corriente.
// Las variantes InTx usan los repositorios del caller (misma transacción); si
// retornan error el caller hace rollback. CleanupIfEmpty corre aparte, después
// del commit: dejar una cuenta en cero no corrompe nada.
type Ledger interface {
	ChargeInTx(
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
		customerID string,
		amount decimal.Decimal,
		description string,
		saleID *string,
		now time.Time,
	) error
	ReverseSaleChargeInTx(
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
		customerID string,
		amount decimal.Decimal,
		saleID string,
	) error
	CleanupIfEmpty(ctx context.Context, customerID string) (bool, error)
}
