package repositories

import "shoppinglist/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	CreateMany(users []models.User) error
	GetAll() ([]models.User, error)
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
}
