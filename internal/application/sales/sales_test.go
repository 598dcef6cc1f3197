package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/dto"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/ledger"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/sales"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/testutil"
)

type saleEnv struct {
	store  *testutil.Store
	ledger *ledger.LedgerUseCase
	uc     *sales.SaleUseCase
}

func newSaleEnv(t *testing.T) *saleEnv {
	t.Helper()
	store := testutil.NewStore()
	runner := store.Runner()
	ledgerUC := ledger.NewLedgerUseCase(runner, store.Customers, store.Accounts, store.Movements, store.Payments)
	uc := sales.NewSaleUseCase(runner, ledgerUC, store.Products, store.Customers, store.Sales, zerolog.Nop())
	return &saleEnv{store: store, ledger: ledgerUC, uc: uc}
}

func (e *saleEnv) seedCustomer(t *testing.T, name string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, e.store.Customers.Create(&entity.Customer{
		ID: id, Name: name, Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return id
}

func (e *saleEnv) seedProduct(t *testing.T, name string, stock int64, price string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, e.store.Products.Create(&entity.Product{
		ID: id, SKU: "SKU-" + id[:8], Name: name,
		SalePrice: decimal.RequireFromString(price), Stock: stock,
		Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return id
}

func (e *saleEnv) stockOf(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := e.store.Products.GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ---------- CreateSale ----------

func TestCreateSale_ContadoDescuentaStockSinTocarCartera(t *testing.T) {
	env := newSaleEnv(t)
	productID := env.seedProduct(t, "Perfume Ámbar 50ml", 10, "120")

	sale, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: productID, Quantity: 3, UnitPrice: dec("120")}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("360")))
	assert.Nil(t, sale.CustomerID)
	assert.EqualValues(t, 7, env.stockOf(t, productID))

	list, err := env.store.Accounts.ListWithPendingBalance()
	require.NoError(t, err)
	assert.Empty(t, list, "venta de contado no crea cuentas ni cargos")
}

func TestCreateSale_CreditoCargaElTotalALaCuenta(t *testing.T) {
	env := newSaleEnv(t)
	customerID := env.seedCustomer(t, "Carmen Ochoa")
	p1 := env.seedProduct(t, "Perfume Rosa 100ml", 5, "200")
	p2 := env.seedProduct(t, "Loción Cedro 75ml", 8, "90.50")

	sale, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: &customerID,
		Lines: []dto.SaleLineRequest{
			{ProductID: p1, Quantity: 2, UnitPrice: dec("200")},
			{ProductID: p2, Quantity: 1, UnitPrice: dec("90.50")},
		},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("490.50")))
	require.Len(t, sale.Lines, 2)
	assert.EqualValues(t, 3, env.stockOf(t, p1))
	assert.EqualValues(t, 7, env.stockOf(t, p2))

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	require.NotNil(t, acct, "la venta a crédito crea la cuenta al vuelo")
	assert.True(t, acct.TotalDebt.Equal(dec("490.50")))
	assert.True(t, acct.PendingBalance.Equal(dec("490.50")))

	movs, err := env.ledger.MovementsOf(context.Background(), customerID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementCharge, movs[0].Kind)
	require.NotNil(t, movs[0].SaleID)
	assert.Equal(t, sale.ID, *movs[0].SaleID, "el cargo queda ligado a la venta")
}

func TestCreateSale_SinLineas(t *testing.T) {
	env := newSaleEnv(t)
	_, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_ClienteInexistente(t *testing.T) {
	env := newSaleEnv(t)
	productID := env.seedProduct(t, "Perfume Lima 30ml", 4, "60")
	fantasma := uuid.New().String()

	_, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: &fantasma,
		Lines:      []dto.SaleLineRequest{{ProductID: productID, Quantity: 1, UnitPrice: dec("60")}},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.EqualValues(t, 4, env.stockOf(t, productID), "nada se muta ante el rechazo")
}

func TestCreateSale_ValidacionPorLinea(t *testing.T) {
	env := newSaleEnv(t)
	escaso := env.seedProduct(t, "Perfume Noche 100ml", 2, "180")
	bueno := env.seedProduct(t, "Colonia Mar 200ml", 50, "45")

	_, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{
			{ProductID: bueno, Quantity: 1, UnitPrice: dec("45")},
			{ProductID: escaso, Quantity: 5, UnitPrice: dec("180")},
			{ProductID: uuid.New().String(), Quantity: 1, UnitPrice: dec("10")},
			{ProductID: bueno, Quantity: 0, UnitPrice: dec("45")},
			{ProductID: bueno, Quantity: 1, UnitPrice: decimal.Zero},
		},
	})
	require.Error(t, err)

	var verr *domain.SaleValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Faults, 4, "una falla por cada línea mala; la línea buena no aparece")
	indices := make([]int, 0, len(verr.Faults))
	for _, f := range verr.Faults {
		indices = append(indices, f.Index)
	}
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, indices)

	assert.EqualValues(t, 2, env.stockOf(t, escaso), "la venta rechazada no toca stock")
	assert.EqualValues(t, 50, env.stockOf(t, bueno))
}

func TestCreateSale_StockInsuficienteReportaDisponibles(t *testing.T) {
	env := newSaleEnv(t)
	productID := env.seedProduct(t, "Perfume Oro 50ml", 3, "300")

	_, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: productID, Quantity: 4, UnitPrice: dec("300")}},
	})
	var verr *domain.SaleValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Faults, 1)
	assert.Contains(t, verr.Faults[0].Reason, "disponibles 3")
}

// ---------- DeleteSale ----------

func TestDeleteSale_RestauraStockYLimpiaCuentaEnCero(t *testing.T) {
	env := newSaleEnv(t)
	customerID := env.seedCustomer(t, "Hugo Prieto")
	productID := env.seedProduct(t, "Perfume Lila 100ml", 10, "150")

	sale, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: &customerID,
		Lines:      []dto.SaleLineRequest{{ProductID: productID, Quantity: 4, UnitPrice: dec("150")}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 6, env.stockOf(t, productID))

	require.NoError(t, env.uc.DeleteSale(context.Background(), sale.ID))

	assert.EqualValues(t, 10, env.stockOf(t, productID), "el stock vuelve al punto de partida")

	gone, err := env.store.Sales.GetByID(sale.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	assert.Nil(t, acct, "al quedar ambos saldos en cero la limpieza borra la cuenta")

	movs, err := env.ledger.MovementsOf(context.Background(), customerID, 10)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestDeleteSale_ConAbonoParcialAplicaPisoEnCero(t *testing.T) {
	env := newSaleEnv(t)
	customerID := env.seedCustomer(t, "Nora Ibarra")
	productID := env.seedProduct(t, "Perfume Miel 50ml", 10, "100")

	sale, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: &customerID,
		Lines:      []dto.SaleLineRequest{{ProductID: productID, Quantity: 1, UnitPrice: dec("100")}},
	})
	require.NoError(t, err)

	_, err = env.ledger.Pay(context.Background(), customerID, dto.RegisterPaymentRequest{
		Amount: dec("40"),
		Method: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	// pending quedó en 60; revertir 100 lo llevaría a -40: debe aterrizar en 0.
	require.NoError(t, env.uc.DeleteSale(context.Background(), sale.ID))

	acct, err := env.store.Accounts.GetByCustomer(customerID)
	require.NoError(t, err)
	assert.Nil(t, acct, "piso en cero en ambos saldos y limpieza posterior")
	assert.EqualValues(t, 10, env.stockOf(t, productID))
}

func TestDeleteSale_VentaDeContadoNoTocaCartera(t *testing.T) {
	env := newSaleEnv(t)
	productID := env.seedProduct(t, "Colonia Sol 200ml", 6, "55")

	sale, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: productID, Quantity: 2, UnitPrice: dec("55")}},
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.DeleteSale(context.Background(), sale.ID))
	assert.EqualValues(t, 6, env.stockOf(t, productID))
}

func TestDeleteSale_Inexistente(t *testing.T) {
	env := newSaleEnv(t)
	err := env.uc.DeleteSale(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------- GetSale / ListSales ----------

func TestGetSale_DevuelveLineas(t *testing.T) {
	env := newSaleEnv(t)
	productID := env.seedProduct(t, "Perfume Uva 30ml", 9, "70")

	created, err := env.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: productID, Quantity: 2, UnitPrice: dec("70")}},
	})
	require.NoError(t, err)

	got, err := env.uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, productID, got.Lines[0].ProductID)
	assert.True(t, got.Lines[0].Subtotal.Equal(dec("140")))
}

func TestGetSale_Inexistente(t *testing.T) {
	env := newSaleEnv(t)
	_, err := env.uc.GetSale(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
