package repository

import (
	"docspot-odonto/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindByUsernameOrEmail(db *gorm.DB, username, email string) (*entity.User, error)
	FindByIDAndRole(db *gorm.DB, id, role string) (*entity.User, error)
	ExistsByID(db *gorm.DB, id string) (bool, error)
}
