package fleet

import (
	"context"

	"gorm.io/gorm"

	"github.com/tmtsbahamas/rentals-backend/pkg/db/models"
)

// Repository wires fleet reference-data persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListCategories loads all car categories in primary-key order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.CarCategory, error) {
	var categories []models.CarCategory
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListCars loads the whole fleet in primary-key order.
func (r *Repository) ListCars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.WithContext(ctx).Order("id").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// FindCar loads one car by id.
func (r *Repository) FindCar(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}
