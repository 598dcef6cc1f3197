package ledger

import (
	"context"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// de cartera atados a esa tx. Garantiza atomicidad saldos + historial + abonos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
		payments repository.PaymentRepository,
	) error) error
}
