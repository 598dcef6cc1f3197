package ledger

import (
	"fmt"
	"time"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

// NextReceiptNumber genera el consecutivo de recibo de abono: ABO-YYYYMMDD-NNNN,
// con NNNN = MAX(payments.id) + 1 a cuatro dígitos. Es una comodidad de
// presentación, no una restricción de unicidad del almacén; con un solo escritor
// a la vez (supuesto de la aplicación) no colisiona.
func NextReceiptNumber(payments repository.PaymentRepository, now time.Time) (string, error) {
	maxID, err := payments.MaxID()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ABO-%s-%04d", now.Format("20060102"), maxID+1), nil
}
