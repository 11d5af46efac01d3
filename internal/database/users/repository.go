// Package users provides database operations for registered members.
package users

import (
	"gorm.io/gorm"

	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

// Repository handles user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. A duplicate username surfaces as ErrConflict.
func (r *Repository) Create(user *entities.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return database.Classify(err)
	}
	return nil
}

// GetByID retrieves a user by primary key.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their unique username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &user, nil
}
