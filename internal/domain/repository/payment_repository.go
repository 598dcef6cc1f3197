package repository

import "github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para abonos.
// MaxID alimenta el consecutivo del número de recibo (ABO-YYYYMMDD-NNNN).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	MaxID() (int64, error)
	ListByCustomer(customerID string, limit int) ([]*entity.Payment, error)
	DeleteByCustomer(customerID string) error
}
