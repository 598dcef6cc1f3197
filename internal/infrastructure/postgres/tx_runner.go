package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/ledger"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/sales"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and sales.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de cartera atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	accounts repository.AccountRepository,
	movements repository.MovementRepository,
	payments repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	accounts := NewAccountRepository(tx)
	movements := NewMovementRepository(tx)
	payments := NewPaymentRepository(tx)

	if err := fn(accounts, movements, payments); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con repos de venta, producto y cartera (para
// crear/reversar ventas: stock + venta + cargo caen juntos o no caen).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	salesRepo repository.SaleRepository,
	products repository.ProductRepository,
	accounts repository.AccountRepository,
	movements repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	salesRepo := NewSaleRepository(tx)
	products := NewProductRepository(tx)
	accounts := NewAccountRepository(tx)
	movements := NewMovementRepository(tx)

	if err := fn(salesRepo, products, accounts, movements); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
