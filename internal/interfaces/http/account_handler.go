package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/dto"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/ledger"
)

// AccountHandler maneja las peticiones HTTP de cuentas corrientes (protegido).
type AccountHandler struct {
	uc *ledger.LedgerUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *ledger.LedgerUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Ensure crea la cuenta del cliente si no existe (idempotente).
// POST /api/accounts/:customerId
func (h *AccountHandler) Ensure(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	accountID, err := h.uc.EnsureAccount(c.Context(), customerID)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.EnsureAccountResponse{
		AccountID:  accountID,
		CustomerID: customerID,
	})
}

// Balance devuelve los saldos del cliente.
// GET /api/accounts/:customerId/balance
func (h *AccountHandler) Balance(c *fiber.Ctx) error {
	balance, err := h.uc.BalanceOf(c.Context(), c.Params("customerId"))
	if err != nil {
		return mapError(c, err)
	}
	if balance == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cliente no tiene cuenta"})
	}
	return c.JSON(balance)
}

// Movements devuelve el historial de cargos y abonos, más reciente primero.
// GET /api/accounts/:customerId/movements?limit=50
func (h *AccountHandler) Movements(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	movs, err := h.uc.MovementsOf(c.Context(), c.Params("customerId"), limit)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(movs)
}

// Pay registra un abono y devuelve el comprobante con su número de recibo.
// POST /api/accounts/:customerId/payments
func (h *AccountHandler) Pay(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.uc.Pay(c.Context(), c.Params("customerId"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// Payments lista los abonos del cliente, más reciente primero.
// GET /api/accounts/:customerId/payments?limit=50
func (h *AccountHandler) Payments(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	pays, err := h.uc.PaymentsOf(c.Context(), c.Params("customerId"), limit)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(pays)
}

// Cleanup borra cuenta e historial si ambos saldos están exactamente en cero.
// DELETE /api/accounts/:customerId
func (h *AccountHandler) Cleanup(c *fiber.Ctx) error {
	deleted, err := h.uc.CleanupIfEmpty(c.Context(), c.Params("customerId"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.CleanupResponse{Deleted: deleted})
}

// Pending lista las cuentas con saldo pendiente (tablero de cartera).
// GET /api/accounts/pending
func (h *AccountHandler) Pending(c *fiber.Ctx) error {
	list, err := h.uc.ListWithPendingBalance(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}
