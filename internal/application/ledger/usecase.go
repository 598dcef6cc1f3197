package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/dto"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

// LedgerUseCase mantiene los saldos de cuenta corriente por cliente y su historial.
// Toda mutación pasa por el TxRunner: saldos denormalizados y movimiento quedan en la
// misma transacción, con la fila de la cuenta bloqueada (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner  TxRunner
	customers repository.CustomerRepository
	accounts  repository.AccountRepository // atado al pool, solo lecturas
	movements repository.MovementRepository
	payments  repository.PaymentRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	customers repository.CustomerRepository,
	accounts repository.AccountRepository,
	movements repository.MovementRepository,
	payments repository.PaymentRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		customers: customers,
		accounts:  accounts,
		movements: movements,
		payments:  payments,
	}
}

// EnsureAccount crea la cuenta del cliente con saldos en cero si no existe.
// Idempotente: si ya existe devuelve el ID actual sin efectos secundarios.
func (uc *LedgerUseCase) EnsureAccount(ctx context.Context, customerID string) (string, error) {
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", domain.ErrCustomerNotFound
	}
	var accountID string
	err = uc.txRunner.Run(ctx, func(
		accounts repository.AccountRepository,
		_ repository.MovementRepository,
		_ repository.PaymentRepository,
	) error {
		acct, err := uc.EnsureAccountInTx(accounts, customerID, time.Now())
		if err != nil {
			return err
		}
		accountID = acct.ID
		return nil
	})
	return accountID, err
}

// EnsureAccountInTx versión para usar dentro de la transacción del caller.
// Devuelve la cuenta con la fila bloqueada si ya existía.
func (uc *LedgerUseCase) EnsureAccountInTx(
	accounts repository.AccountRepository,
	customerID string,
	now time.Time,
) (*entity.Account, error) {
	acct, err := accounts.GetByCustomerForUpdate(customerID)
	if err != nil {
		return nil, err
	}
	if acct != nil {
		return acct, nil
	}
	acct = &entity.Account{
		ID:             uuid.New().String(),
		CustomerID:     customerID,
		TotalDebt:      decimal.Zero,
		PendingBalance: decimal.Zero,
		LastUpdated:    now,
		Active:         true,
	}
	if err := accounts.Create(acct); err != nil {
		// customer_id es UNIQUE: si otro caller creó la cuenta primero, se relee.
		if errors.Is(err, domain.ErrDuplicate) {
			return accounts.GetByCustomerForUpdate(customerID)
		}
		return nil, err
	}
	return acct, nil
}

// Charge carga un monto a la cuenta del cliente (venta a crédito): crea la cuenta
// si hace falta, suma a TotalDebt y PendingBalance y registra el movimiento CHARGE.
func (uc *LedgerUseCase) Charge(ctx context.Context, customerID string, amount decimal.Decimal, description string, saleID *string) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrCustomerNotFound
	}
	return uc.txRunner.Run(ctx, func(
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
		_ repository.PaymentRepository,
	) error {
		return uc.ChargeInTx(accounts, movements, customerID, amount, description, saleID, time.Now())
	})
}

// ChargeInTx aplica el cargo usando los repositorios del caller (misma transacción).
// La usa el coordinador de ventas para que el cargo caiga con la venta o no caiga.
func (uc *LedgerUseCase) ChargeInTx(
	accounts repository.AccountRepository,
	movements repository.MovementRepository,
	customerID string,
	amount decimal.Decimal,
	description string,
	saleID *string,
	now time.Time,
) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	acct, err := uc.EnsureAccountInTx(accounts, customerID, now)
	if err != nil {
		return err
	}
	totalDebt := acct.TotalDebt.Add(amount)
	pending := acct.PendingBalance.Add(amount)
	if err := accounts.UpdateBalances(acct.ID, totalDebt, pending, now); err != nil {
		return err
	}
	return movements.Create(&entity.Movement{
		CustomerID:  customerID,
		Kind:        entity.MovementCharge,
		Amount:      amount,
		Description: description,
		SaleID:      saleID,
		CreatedAt:   now,
	})
}

// Pay registra un abono: descuenta PendingBalance (nunca por debajo de cero, el abono
// no puede superar el saldo), agrega el movimiento PAYMENT y el registro Payment con
// su número de recibo. Todo en una transacción.
func (uc *LedgerUseCase) Pay(ctx context.Context, customerID string, in dto.RegisterPaymentRequest) (*dto.PaymentReceiptResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if !entity.IsValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidPaymentMethod
	}
	var resp *dto.PaymentReceiptResponse
	err := uc.txRunner.Run(ctx, func(
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
		payments repository.PaymentRepository,
	) error {
		acct, err := accounts.GetByCustomerForUpdate(customerID)
		if err != nil {
			return err
		}
		if acct == nil {
			return domain.ErrAccountNotFound
		}
		if in.Amount.GreaterThan(acct.PendingBalance) {
			return domain.ErrAmountExceedsBalance
		}
		now := time.Now()
		pending := acct.PendingBalance.Sub(in.Amount)
		if err := accounts.UpdateBalances(acct.ID, acct.TotalDebt, pending, now); err != nil {
			return err
		}
		if err := movements.Create(&entity.Movement{
			CustomerID:  customerID,
			Kind:        entity.MovementPayment,
			Amount:      in.Amount,
			Description: in.Description,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		receipt, err := NextReceiptNumber(payments, now)
		if err != nil {
			return err
		}
		payment := &entity.Payment{
			CustomerID:    customerID,
			Amount:        in.Amount,
			Method:        in.Method,
			Description:   in.Description,
			ReceiptNumber: receipt,
			CreatedAt:     now,
		}
		if err := payments.Create(payment); err != nil {
			return err
		}
		resp = &dto.PaymentReceiptResponse{
			ReceiptNumber:  receipt,
			CustomerID:     customerID,
			Amount:         in.Amount,
			Method:         in.Method,
			PendingBalance: pending,
			Date:           now.Format("2006-01-02"),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ReverseSaleChargeInTx deshace el cargo de una venta (solo lo llama el coordinador
// de ventas durante la reversa total). Descuenta TotalDebt y PendingBalance con piso
// en cero — tolerancia deliberada a datos históricos desfasados — y borra los
// movimientos ligados a la venta.
func (uc *LedgerUseCase) ReverseSaleChargeInTx(
	accounts repository.AccountRepository,
	movements repository.MovementRepository,
	customerID string,
	amount decimal.Decimal,
	saleID string,
) error {
	acct, err := accounts.GetByCustomerForUpdate(customerID)
	if err != nil {
		return err
	}
	if acct == nil {
		// Sin cuenta no hay nada que revertir.
		return nil
	}
	totalDebt := acct.TotalDebt.Sub(amount)
	if totalDebt.IsNegative() {
		totalDebt = decimal.Zero
	}
	pending := acct.PendingBalance.Sub(amount)
	if pending.IsNegative() {
		pending = decimal.Zero
	}
	if pending.GreaterThan(totalDebt) {
		pending = totalDebt
	}
	if err := accounts.UpdateBalances(acct.ID, totalDebt, pending, time.Now()); err != nil {
		return err
	}
	return movements.DeleteBySale(saleID)
}

// BalanceOf devuelve los saldos del cliente, o nil si no tiene cuenta.
func (uc *LedgerUseCase) BalanceOf(ctx context.Context, customerID string) (*dto.BalanceResponse, error) {
	acct, err := uc.accounts.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, nil
	}
	return &dto.BalanceResponse{
		CustomerID:     acct.CustomerID,
		TotalDebt:      acct.TotalDebt,
		PendingBalance: acct.PendingBalance,
		LastUpdated:    acct.LastUpdated,
	}, nil
}

// MovementsOf devuelve el historial del cliente, más reciente primero, acotado.
func (uc *LedgerUseCase) MovementsOf(ctx context.Context, customerID string, limit int) ([]*dto.MovementResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	movs, err := uc.movements.ListByCustomer(customerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, &dto.MovementResponse{
			ID:          m.ID,
			Kind:        m.Kind,
			Amount:      m.Amount,
			Description: m.Description,
			SaleID:      m.SaleID,
			Date:        m.CreatedAt,
		})
	}
	return out, nil
}

// CleanupIfEmpty borra la cuenta, sus movimientos y sus abonos si y solo si ambos
// saldos son exactamente cero (comparación exacta: los montos son sumas de registros
// exactos). Devuelve si se borró. No es automática: el caller decide cuándo invocarla.
func (uc *LedgerUseCase) CleanupIfEmpty(ctx context.Context, customerID string) (bool, error) {
	deleted := false
	err := uc.txRunner.Run(ctx, func(
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
		payments repository.PaymentRepository,
	) error {
		acct, err := accounts.GetByCustomerForUpdate(customerID)
		if err != nil {
			return err
		}
		if acct == nil {
			return nil
		}
		if !acct.TotalDebt.IsZero() || !acct.PendingBalance.IsZero() {
			return nil
		}
		if err := payments.DeleteByCustomer(customerID); err != nil {
			return err
		}
		if err := movements.DeleteByCustomer(customerID); err != nil {
			return err
		}
		if err := accounts.Delete(acct.ID); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// ListWithPendingBalance lista las cuentas con saldo pendiente (tablero de cartera).
func (uc *LedgerUseCase) ListWithPendingBalance(ctx context.Context) ([]*dto.AccountSummaryResponse, error) {
	summaries, err := uc.accounts.ListWithPendingBalance()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, &dto.AccountSummaryResponse{
			CustomerID:     s.CustomerID,
			CustomerName:   s.CustomerName,
			TotalDebt:      s.TotalDebt,
			PendingBalance: s.PendingBalance,
			LastUpdated:    s.LastUpdated,
		})
	}
	return out, nil
}

// PaymentsOf devuelve los abonos del cliente, más reciente primero, acotado.
func (uc *LedgerUseCase) PaymentsOf(ctx context.Context, customerID string, limit int) ([]*dto.PaymentResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	pays, err := uc.payments.ListByCustomer(customerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(pays))
	for _, p := range pays {
		out = append(out, &dto.PaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount,
			Method:        p.Method,
			Description:   p.Description,
			ReceiptNumber: p.ReceiptNumber,
			Date:          p.CreatedAt,
		})
	}
	return out, nil
}
