package repository

import "github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el historial de la cuenta.
// Los movimientos son inmutables: solo se crean, se listan y se borran en bloque
// (reversa de venta o limpieza de cuenta).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByCustomer(customerID string, limit int) ([]*entity.Movement, error)
	DeleteBySale(saleID string) error
	DeleteByCustomer(customerID string) error
}
