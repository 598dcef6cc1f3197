package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/ledger"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/testutil"
)

func TestNextReceiptNumber_PrimerRecibo(t *testing.T) {
	store := testutil.NewStore()
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	got, err := ledger.NextReceiptNumber(store.Payments, now)
	require.NoError(t, err)
	assert.Equal(t, "ABO-20260315-0001", got)
}

func TestNextReceiptNumber_ConsecutivoTrasAbonos(t *testing.T) {
	store := testutil.NewStore()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Payments.Create(&entity.Payment{
			CustomerID:    "c1",
			Amount:        decimal.NewFromInt(10),
			Method:        entity.PaymentMethodCash,
			ReceiptNumber: "ABO-20260314-0001",
			CreatedAt:     time.Now(),
		}))
	}
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := ledger.NextReceiptNumber(store.Payments, now)
	require.NoError(t, err)
	assert.Equal(t, "ABO-20260315-0004", got, "el consecutivo sigue a MAX(id), no reinicia por fecha")
}
