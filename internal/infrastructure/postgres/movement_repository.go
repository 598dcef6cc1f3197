package postgres

import (
	"context"
	"fmt"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del historial de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y devuelve su ID secuencial.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (customer_id, kind, amount, description, sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.CustomerID, movement.Kind, movement.Amount,
		movement.Description, movement.SaleID, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByCustomer lista los movimientos de un cliente, más recientes primero.
func (r *MovementRepo) ListByCustomer(customerID string, limit int) ([]*entity.Movement, error) {
	query := `
		SELECT id, customer_id, kind, amount, description, sale_id, created_at
		FROM movements
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		err := rows.Scan(&m.ID, &m.CustomerID, &m.Kind, &m.Amount, &m.Description, &m.SaleID, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteBySale borra los movimientos ligados a una venta (al anularla).
func (r *MovementRepo) DeleteBySale(saleID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE sale_id = $1`, saleID); err != nil {
		return fmt.Errorf("delete movements by sale: %w", err)
	}
	return nil
}

// DeleteByCustomer borra todo el historial de un cliente (limpieza de cuenta saldada).
func (r *MovementRepo) DeleteByCustomer(customerID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("delete movements by customer: %w", err)
	}
	return nil
}
