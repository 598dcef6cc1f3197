package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/dto"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/ledger"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/testutil"
)

type ledgerEnv struct {
	store *testutil.Store
	uc    *ledger.LedgerUseCase
}

func newLedgerEnv(t *testing.T) *ledgerEnv {
	t.Helper()
	store := testutil.NewStore()
	uc := ledger.NewLedgerUseCase(store.Runner(), store.Customers, store.Accounts, store.Movements, store.Payments)
	return &ledgerEnv{store: store, uc: uc}
}

func (e *ledgerEnv) seedCustomer(t *testing.T, name string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, e.store.Customers.Create(&entity.Customer{
		ID: id, Name: name, Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return id
}

// requireInvariant verifica 0 <= pending_balance <= total_debt.
func requireInvariant(t *testing.T, acct *entity.Account) {
	t.Helper()
	require.NotNil(t, acct)
	assert.False(t, acct.PendingBalance.IsNegative(), "pending_balance no puede ser negativo")
	assert.False(t, acct.PendingBalance.GreaterThan(acct.TotalDebt), "pending_balance no puede superar total_debt")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ---------- EnsureAccount ----------

func TestEnsureAccount_Idempotente(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "María Gómez")

	first, err := env.uc.EnsureAccount(context.Background(), customerID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := env.uc.EnsureAccount(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "la segunda llamada debe devolver la misma cuenta")

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.True(t, acct.TotalDebt.IsZero(), "la cuenta nueva arranca en cero")
	assert.True(t, acct.PendingBalance.IsZero())
}

func TestEnsureAccount_ClienteInexistente(t *testing.T) {
	env := newLedgerEnv(t)
	_, err := env.uc.EnsureAccount(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

// ---------- Charge ----------

func TestCharge_SumaSaldosYRegistraMovimiento(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Pedro Ruiz")

	err := env.uc.Charge(context.Background(), customerID, dec("150.50"), "Venta", nil)
	require.NoError(t, err)

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	requireInvariant(t, acct)
	assert.True(t, acct.TotalDebt.Equal(dec("150.50")))
	assert.True(t, acct.PendingBalance.Equal(dec("150.50")))

	movs, err := env.uc.MovementsOf(context.Background(), customerID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementCharge, movs[0].Kind)
	assert.True(t, movs[0].Amount.Equal(dec("150.50")))
}

func TestCharge_CreaCuentaSiNoExiste(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Lucía Mena")

	require.NoError(t, env.uc.Charge(context.Background(), customerID, dec("20"), "Venta", nil))

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	require.NotNil(t, acct, "el cargo debe crear la cuenta al vuelo")
	requireInvariant(t, acct)
}

func TestCharge_MontoInvalido(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Ana Ríos")

	assert.ErrorIs(t, env.uc.Charge(context.Background(), customerID, decimal.Zero, "", nil), domain.ErrInvalidAmount)
	assert.ErrorIs(t, env.uc.Charge(context.Background(), customerID, dec("-5"), "", nil), domain.ErrInvalidAmount)
}

func TestCharge_ClienteInexistente(t *testing.T) {
	env := newLedgerEnv(t)
	err := env.uc.Charge(context.Background(), uuid.New().String(), dec("10"), "", nil)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

// ---------- Pay ----------

func TestPay_DescuentaPendienteYEmiteRecibo(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Jorge Lara")
	require.NoError(t, env.uc.Charge(context.Background(), customerID, dec("100"), "Venta", nil))

	receipt, err := env.uc.Pay(context.Background(), customerID, dto.RegisterPaymentRequest{
		Amount: dec("40"),
		Method: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.True(t, receipt.PendingBalance.Equal(dec("60")))
	assert.Regexp(t, `^ABO-\d{8}-\d{4}$`, receipt.ReceiptNumber)

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	requireInvariant(t, acct)
	assert.True(t, acct.TotalDebt.Equal(dec("100")), "el abono no toca la deuda histórica")
	assert.True(t, acct.PendingBalance.Equal(dec("60")))

	movs, err := env.uc.MovementsOf(context.Background(), customerID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementPayment, movs[0].Kind, "el movimiento más reciente es el abono")

	pays, err := env.uc.PaymentsOf(context.Background(), customerID, 10)
	require.NoError(t, err)
	require.Len(t, pays, 1)
	assert.Equal(t, receipt.ReceiptNumber, pays[0].ReceiptNumber)
}

func TestPay_SaldoExacto(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Rosa Díaz")
	require.NoError(t, env.uc.Charge(context.Background(), customerID, dec("75.25"), "Venta", nil))

	receipt, err := env.uc.Pay(context.Background(), customerID, dto.RegisterPaymentRequest{
		Amount: dec("75.25"),
		Method: entity.PaymentMethodTransfer,
	})
	require.NoError(t, err)
	assert.True(t, receipt.PendingBalance.IsZero())

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	require.NotNil(t, acct, "saldar la cuenta no la borra; la limpieza es explícita")
	requireInvariant(t, acct)
}

func TestPay_MontoSuperaSaldo(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Iván Soto")
	require.NoError(t, env.uc.Charge(context.Background(), customerID, dec("50"), "Venta", nil))

	_, err := env.uc.Pay(context.Background(), customerID, dto.RegisterPaymentRequest{
		Amount: dec("50.01"),
		Method: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	assert.True(t, acct.PendingBalance.Equal(dec("50")), "el rechazo no altera el saldo")

	pays, err := env.uc.PaymentsOf(context.Background(), customerID, 10)
	require.NoError(t, err)
	assert.Empty(t, pays, "el abono rechazado no queda registrado")
}

func TestPay_SinCuenta(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Elsa Paz")

	_, err := env.uc.Pay(context.Background(), customerID, dto.RegisterPaymentRequest{
		Amount: dec("10"),
		Method: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestPay_ValidacionDeEntrada(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Luis Vera")

	_, err := env.uc.Pay(context.Background(), customerID, dto.RegisterPaymentRequest{
		Amount: decimal.Zero,
		Method: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = env.uc.Pay(context.Background(), customerID, dto.RegisterPaymentRequest{
		Amount: dec("10"),
		Method: "BITCOIN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
}

// ---------- BalanceOf / MovementsOf ----------

func TestBalanceOf_SinCuentaDevuelveNil(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Noé Gil")

	balance, err := env.uc.BalanceOf(context.Background(), customerID)
	require.NoError(t, err)
	assert.Nil(t, balance)
}

func TestMovementsOf_LimiteYOrden(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Eva Luz")
	for i := 0; i < 5; i++ {
		require.NoError(t, env.uc.Charge(context.Background(), customerID, dec("10"), "Venta", nil))
	}

	movs, err := env.uc.MovementsOf(context.Background(), customerID, 3)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Greater(t, movs[0].ID, movs[1].ID, "más reciente primero")
}

// ---------- CleanupIfEmpty ----------

func TestCleanupIfEmpty_BorraSoloConSaldosEnCero(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Sara Paredes")
	_, err := env.uc.EnsureAccount(context.Background(), customerID)
	require.NoError(t, err)

	deleted, err := env.uc.CleanupIfEmpty(context.Background(), customerID)
	require.NoError(t, err)
	assert.True(t, deleted, "cuenta recién creada: ambos saldos en cero")

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	assert.Nil(t, acct)
}

func TestCleanupIfEmpty_NoBorraConDeuda(t *testing.T) {
	env := newLedgerEnv(t)
	customerID := env.seedCustomer(t, "Tomás Neira")
	require.NoError(t, env.uc.Charge(context.Background(), customerID, dec("30"), "Venta", nil))

	deleted, err := env.uc.CleanupIfEmpty(context.Background(), customerID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// Pagar todo deja pending en cero pero la deuda histórica no: tampoco se borra.
	_, err = env.uc.Pay(context.Background(), customerID, dto.RegisterPaymentRequest{
		Amount: dec("30"),
		Method: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	deleted, err = env.uc.CleanupIfEmpty(context.Background(), customerID)
	require.NoError(t, err)
	assert.False(t, deleted, "total_debt > 0 impide la limpieza")

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	require.NotNil(t, acct)
}

func TestCleanupIfEmpty_SinCuentaEsNoOp(t *testing.T) {
	env := newLedgerEnv(t)
	deleted, err := env.uc.CleanupIfEmpty(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.False(t, deleted)
}

// ---------- ListWithPendingBalance ----------

func TestListWithPendingBalance_SoloCuentasConSaldo(t *testing.T) {
	env := newLedgerEnv(t)
	deudor := env.seedCustomer(t, "Mario Peña")
	saldado := env.seedCustomer(t, "Rita Soto")

	require.NoError(t, env.uc.Charge(context.Background(), deudor, dec("80"), "Venta", nil))
	require.NoError(t, env.uc.Charge(context.Background(), saldado, dec("25"), "Venta", nil))
	_, err := env.uc.Pay(context.Background(), saldado, dto.RegisterPaymentRequest{
		Amount: dec("25"),
		Method: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	list, err := env.uc.ListWithPendingBalance(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, deudor, list[0].CustomerID)
	assert.Equal(t, "Mario Peña", list[0].CustomerName)
	assert.True(t, list[0].PendingBalance.Equal(dec("80")))
}
