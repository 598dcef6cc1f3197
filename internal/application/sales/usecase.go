package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/dto"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/repository"
)

// SaleUseCase es el único camino que crea o destruye una venta, y el único caller
// autorizado a mover stock junto con la cuenta corriente. Cada operación compuesta
// corre en una sola transacción (TxRunner) con rollback ante cualquier falla.
type SaleUseCase struct {
	txRunner  TxRunner
	ledger    Ledger
	products  repository.ProductRepository // atado al pool, solo lecturas
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	log       zerolog.Logger
}

// NewSaleUseCase construye el coordinador.
func NewSaleUseCase(
	txRunner TxRunner,
	ledger Ledger,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
	log zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		products:  products,
		customers: customers,
		sales:     sales,
		log:       log,
	}
}

// CreateSale valida línea por línea, y en una sola transacción inserta la venta y
// sus líneas, descuenta stock por línea (re-verificado bajo bloqueo de fila) y, si
// hay cliente, carga el total a su cuenta. Venta de contado (sin cliente) no toca
// la cartera ni crea cuenta.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerID != nil {
		customer, err := uc.customers.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrCustomerNotFound
		}
	}

	// Validación por línea, antes de mutar nada: qué línea y qué tiene mal.
	verr := &domain.SaleValidationError{}
	for i, line := range in.Lines {
		if line.ProductID == "" {
			verr.Add(i, "", "producto requerido")
			continue
		}
		product, err := uc.products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			verr.Add(i, line.ProductID, "producto no encontrado")
			continue
		}
		if line.Quantity <= 0 {
			verr.Add(i, line.ProductID, "la cantidad debe ser mayor que cero")
		}
		if !line.UnitPrice.GreaterThan(decimal.Zero) {
			verr.Add(i, line.ProductID, "el precio unitario debe ser mayor que cero")
		}
		if line.Quantity > 0 && product.Stock < line.Quantity {
			verr.Add(i, line.ProductID, fmt.Sprintf("stock insuficiente: disponibles %d", product.Stock))
		}
	}
	if verr.HasFaults() {
		return nil, verr
	}

	now := time.Now()
	saleID := uuid.New().String()
	sale := &entity.Sale{
		ID:         saleID,
		CustomerID: in.CustomerID,
		Notes:      in.Notes,
		CreatedAt:  now,
	}
	var lines []*entity.SaleLine

	err := uc.txRunner.RunSale(ctx, func(
		salesRepo repository.SaleRepository,
		products repository.ProductRepository,
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
	) error {
		total := decimal.Zero
		lines = lines[:0]
		for _, line := range in.Lines {
			// Re-verificación bajo SELECT FOR UPDATE: el stock pudo cambiar desde la validación.
			product, err := products.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			if product.Stock < line.Quantity {
				return domain.ErrInsufficientStock
			}
			if err := products.UpdateStock(product.ID, product.Stock-line.Quantity); err != nil {
				return err
			}
			subtotal := line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
			total = total.Add(subtotal)
			lines = append(lines, &entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Subtotal:  subtotal,
			})
		}
		sale.Total = total
		if err := salesRepo.Create(sale); err != nil {
			return err
		}
		for _, l := range lines {
			if err := salesRepo.CreateLine(l); err != nil {
				return err
			}
		}
		if in.CustomerID != nil {
			// El cargo cae con la venta o no cae: misma transacción.
			sid := saleID
			if err := uc.ledger.ChargeInTx(accounts, movements, *in.CustomerID, total, "Venta", &sid, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines), nil
}

// DeleteSale revierte una venta por completo en una sola transacción: restaura el
// stock de cada línea, deshace el cargo en la cuenta (con piso en cero) borrando sus
// movimientos, y elimina líneas y cabecera. Después del commit intenta la limpieza
// de cuenta en cero; que falle no es fatal (una cuenta vacía sobrante es cosmética).
func (uc *SaleUseCase) DeleteSale(ctx context.Context, saleID string) error {
	var customerID *string
	err := uc.txRunner.RunSale(ctx, func(
		salesRepo repository.SaleRepository,
		products repository.ProductRepository,
		accounts repository.AccountRepository,
		movements repository.MovementRepository,
	) error {
		sale, err := salesRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		customerID = sale.CustomerID
		lines, err := salesRepo.GetLines(saleID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			product, err := products.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			if err := products.UpdateStock(product.ID, product.Stock+line.Quantity); err != nil {
				return err
			}
		}
		if sale.CustomerID != nil {
			if err := uc.ledger.ReverseSaleChargeInTx(accounts, movements, *sale.CustomerID, sale.Total, saleID); err != nil {
				return err
			}
		}
		if err := salesRepo.DeleteLines(saleID); err != nil {
			return err
		}
		return salesRepo.Delete(saleID)
	})
	if err != nil {
		return err
	}
	if customerID != nil {
		if _, err := uc.ledger.CleanupIfEmpty(ctx, *customerID); err != nil {
			uc.log.Warn().Err(err).Str("customer_id", *customerID).
				Msg("limpieza de cuenta en cero falló tras reversar venta")
		}
	}
	return nil
}

// GetSale obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.sales.GetLines(saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines), nil
}

// ListSales lista ventas, más reciente primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, limit, offset int) ([]*dto.SaleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.sales.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, nil))
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale, lines []*entity.SaleLine) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         sale.ID,
		CustomerID: sale.CustomerID,
		Total:      sale.Total,
		Notes:      sale.Notes,
		Date:       sale.CreatedAt.Format("2006-01-02"),
		Lines:      make([]dto.SaleLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return resp
}
