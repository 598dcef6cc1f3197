package repository

import "github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	GetByID(id string) (*entity.Sale, error)
	GetLines(saleID string) ([]*entity.SaleLine, error)
	List(limit, offset int) ([]*entity.Sale, error)
	DeleteLines(saleID string) error
	Delete(id string) error
}
