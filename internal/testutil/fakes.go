// Package testutil provee dobles en memoria de los repositorios y del TxRunner
// para probar los casos de uso sin PostgreSQL. No simulan aislamiento
// transaccional: cada operación aplica de inmediato.
package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

// Store agrupa todos los repositorios falsos sobre un estado compartido.
type Store struct {
	Customers *FakeCustomerRepo
	Products  *FakeProductRepo
	Accounts  *FakeAccountRepo
	Movements *FakeMovementRepo
	Payments  *FakePaymentRepo
	Sales     *FakeSaleRepo
}

// NewStore construye el estado en memoria.
func NewStore() *Store {
	customers := &FakeCustomerRepo{byID: map[string]*entity.Customer{}}
	return &Store{
		Customers: customers,
		Products:  &FakeProductRepo{byID: map[string]*entity.Product{}},
		Accounts:  &FakeAccountRepo{byCustomer: map[string]*entity.Account{}, customers: customers},
		Movements: &FakeMovementRepo{},
		Payments:  &FakePaymentRepo{},
		Sales:     &FakeSaleRepo{byID: map[string]*entity.Sale{}},
	}
}

// Runner devuelve un TxRunner falso atado al estado.
func (s *Store) Runner() *FakeTxRunner {
	return &FakeTxRunner{store: s}
}

// FakeTxRunner ejecuta los callbacks contra el estado compartido, sin
// transacción real. Satisface los TxRunner de ledger y de ventas.
type FakeTxRunner struct {
	store *Store
	// Runs cuenta las invocaciones, útil para verificar atomicidad por diseño.
	Runs int
}

func (r *FakeTxRunner) Run(ctx context.Context, fn func(
	accounts repository.AccountRepository,
	movements repository.MovementRepository,
	payments repository.PaymentRepository,
) error) error {
	r.Runs++
	return fn(r.store.Accounts, r.store.Movements, r.store.Payments)
}

func (r *FakeTxRunner) RunSale(ctx context.Context, fn func(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	accounts repository.AccountRepository,
	movements repository.MovementRepository,
) error) error {
	r.Runs++
	return fn(r.store.Sales, r.store.Products, r.store.Accounts, r.store.Movements)
}

// ---------- Clientes ----------

type FakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func (f *FakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *FakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *FakeCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *FakeCustomerRepo) List(search string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ---------- Productos ----------

type FakeProductRepo struct {
	byID map[string]*entity.Product
}

func (f *FakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *FakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *FakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.GetByID(id)
}

func (f *FakeProductRepo) UpdateStock(id string, stock int64) error {
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = stock
	return nil
}

func (f *FakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *FakeProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.byID {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ---------- Cuentas ----------

type FakeAccountRepo struct {
	byCustomer map[string]*entity.Account
	customers  *FakeCustomerRepo
}

func (f *FakeAccountRepo) Create(a *entity.Account) error {
	if _, exists := f.byCustomer[a.CustomerID]; exists {
		return domain.ErrDuplicate
	}
	cp := *a
	f.byCustomer[a.CustomerID] = &cp
	return nil
}

func (f *FakeAccountRepo) GetByCustomer(customerID string) (*entity.Account, error) {
	a, ok := f.byCustomer[customerID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *FakeAccountRepo) GetByCustomerForUpdate(customerID string) (*entity.Account, error) {
	return f.GetByCustomer(customerID)
}

func (f *FakeAccountRepo) UpdateBalances(id string, totalDebt, pendingBalance decimal.Decimal, lastUpdated time.Time) error {
	for _, a := range f.byCustomer {
		if a.ID == id {
			a.TotalDebt = totalDebt
			a.PendingBalance = pendingBalance
			a.LastUpdated = lastUpdated
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (f *FakeAccountRepo) Delete(id string) error {
	for customerID, a := range f.byCustomer {
		if a.ID == id {
			delete(f.byCustomer, customerID)
			return nil
		}
	}
	return nil
}

func (f *FakeAccountRepo) ListWithPendingBalance() ([]*entity.AccountSummary, error) {
	var out []*entity.AccountSummary
	for _, a := range f.byCustomer {
		if !a.PendingBalance.GreaterThan(decimal.Zero) {
			continue
		}
		name := ""
		if c, _ := f.customers.GetByID(a.CustomerID); c != nil {
			name = c.Name
		}
		out = append(out, &entity.AccountSummary{Account: *a, CustomerName: name})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PendingBalance.GreaterThan(out[j].PendingBalance)
	})
	return out, nil
}

// ---------- Movimientos ----------

type FakeMovementRepo struct {
	items  []*entity.Movement
	nextID int64
}

func (f *FakeMovementRepo) Create(m *entity.Movement) error {
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.items = append(f.items, &cp)
	return nil
}

func (f *FakeMovementRepo) ListByCustomer(customerID string, limit int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		if f.items[i].CustomerID == customerID {
			cp := *f.items[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *FakeMovementRepo) DeleteBySale(saleID string) error {
	kept := f.items[:0]
	for _, m := range f.items {
		if m.SaleID == nil || *m.SaleID != saleID {
			kept = append(kept, m)
		}
	}
	f.items = kept
	return nil
}

func (f *FakeMovementRepo) DeleteByCustomer(customerID string) error {
	kept := f.items[:0]
	for _, m := range f.items {
		if m.CustomerID != customerID {
			kept = append(kept, m)
		}
	}
	f.items = kept
	return nil
}

// ---------- Abonos ----------

type FakePaymentRepo struct {
	items  []*entity.Payment
	nextID int64
}

func (f *FakePaymentRepo) Create(p *entity.Payment) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.items = append(f.items, &cp)
	return nil
}

func (f *FakePaymentRepo) MaxID() (int64, error) {
	return f.nextID, nil
}

func (f *FakePaymentRepo) ListByCustomer(customerID string, limit int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		if f.items[i].CustomerID == customerID {
			cp := *f.items[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *FakePaymentRepo) DeleteByCustomer(customerID string) error {
	kept := f.items[:0]
	for _, p := range f.items {
		if p.CustomerID != customerID {
			kept = append(kept, p)
		}
	}
	f.items = kept
	return nil
}

// ---------- Ventas ----------

type FakeSaleRepo struct {
	byID  map[string]*entity.Sale
	lines []*entity.SaleLine
}

func (f *FakeSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *FakeSaleRepo) CreateLine(l *entity.SaleLine) error {
	cp := *l
	f.lines = append(f.lines, &cp)
	return nil
}

func (f *FakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *FakeSaleRepo) GetLines(saleID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	for _, l := range f.lines {
		if l.SaleID == saleID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *FakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.byID {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeSaleRepo) DeleteLines(saleID string) error {
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.SaleID != saleID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return nil
}

func (f *FakeSaleRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}
