package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, customer_id, total_debt, pending_balance, last_updated, active`

// AccountRepo implementación de AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de cuentas corrientes. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una cuenta nueva. La restricción UNIQUE sobre customer_id
// garantiza una sola cuenta por cliente aun bajo concurrencia.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, customer_id, total_debt, pending_balance, last_updated, active)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.CustomerID, account.TotalDebt, account.PendingBalance,
		account.LastUpdated, account.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByCustomer obtiene la cuenta de un cliente. (nil, nil) si no existe.
func (r *AccountRepo) GetByCustomer(customerID string) (*entity.Account, error) {
	return r.scanOne(`SELECT `+accountColumns+` FROM accounts WHERE customer_id = $1`, customerID)
}

// GetByCustomerForUpdate obtiene la cuenta bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *AccountRepo) GetByCustomerForUpdate(customerID string) (*entity.Account, error) {
	return r.scanOne(`SELECT `+accountColumns+` FROM accounts WHERE customer_id = $1 FOR UPDATE`, customerID)
}

// UpdateBalances fija los saldos de la cuenta. El caso de uso calcula los valores
// con la fila previamente bloqueada.
func (r *AccountRepo) UpdateBalances(id string, totalDebt, pendingBalance decimal.Decimal, lastUpdated time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE accounts SET total_debt = $2, pending_balance = $3, last_updated = $4 WHERE id = $1`,
		id, totalDebt, pendingBalance, lastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update account balances: %w", err)
	}
	return nil
}

// Delete elimina la cuenta.
func (r *AccountRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// ListWithPendingBalance lista las cuentas con saldo pendiente mayor a cero,
// junto al nombre del cliente, ordenadas de mayor a menor deuda.
func (r *AccountRepo) ListWithPendingBalance() ([]*entity.AccountSummary, error) {
	query := `
		SELECT a.id, a.customer_id, a.total_debt, a.pending_balance, a.last_updated, a.active, c.name
		FROM accounts a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.pending_balance > 0
		ORDER BY a.pending_balance DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list accounts with balance: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountSummary
	for rows.Next() {
		var s entity.AccountSummary
		err := rows.Scan(
			&s.ID, &s.CustomerID, &s.TotalDebt, &s.PendingBalance,
			&s.LastUpdated, &s.Active, &s.CustomerName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan account summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *AccountRepo) scanOne(query string, args ...any) (*entity.Account, error) {
	var a entity.Account
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.CustomerID, &a.TotalDebt, &a.PendingBalance, &a.LastUpdated, &a.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}
