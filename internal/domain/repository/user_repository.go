package repository

import "github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByUsername(username string) (*entity.User, error)
	Count() (int, error)
}
