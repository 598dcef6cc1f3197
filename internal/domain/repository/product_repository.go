package repository

import "github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) — solo tiene sentido dentro de una tx.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(id string, stock int64) error
	Update(product *entity.Product) error
	List(search string, limit, offset int) ([]*entity.Product, error)
}
