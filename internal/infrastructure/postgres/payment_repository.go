package postgres

import (
	"context"
	"fmt"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de abonos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un abono y devuelve su ID secuencial.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (customer_id, amount, method, description, receipt_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		payment.CustomerID, payment.Amount, payment.Method,
		payment.Description, payment.ReceiptNumber, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// MaxID devuelve el mayor ID registrado (0 si no hay abonos). Se consulta
// dentro de la transacción del abono para numerar el recibo.
func (r *PaymentRepo) MaxID() (int64, error) {
	var max int64
	err := r.q.QueryRow(context.Background(), `SELECT COALESCE(MAX(id), 0) FROM payments`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max payment id: %w", err)
	}
	return max, nil
}

// ListByCustomer lista los abonos de un cliente, más recientes primero.
func (r *PaymentRepo) ListByCustomer(customerID string, limit int) ([]*entity.Payment, error) {
	query := `
		SELECT id, customer_id, amount, method, description, receipt_number, created_at
		FROM payments
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.Method, &p.Description, &p.ReceiptNumber, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeleteByCustomer borra los abonos de un cliente (limpieza de cuenta saldada).
func (r *PaymentRepo) DeleteByCustomer(customerID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("delete payments by customer: %w", err)
	}
	return nil
}
