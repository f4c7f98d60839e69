package booking

import (
	"context"

	"gorm.io/gorm"

	"github.com/tmtsbahamas/rentals-backend/pkg/db/models"
)

// Repository wires reservation persistence and the inventory counter.
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

// FindCar loads a car without associations.
func (r *Repository) FindCar(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// DecrementCarQuantity takes one unit from the car's pool. The quantity
// guard lives in the WHERE clause so the check and decrement are a single
// statement; zero rows affected means the pool was already empty.
func (r *Repository) DecrementCarQuantity(ctx context.Context, carID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ? AND quantity > 0", carID).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementCarQuantity returns one unit to the car's pool. Zero rows
// affected means the car no longer exists.
func (r *Repository) IncrementCarQuantity(ctx context.Context, carID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ?", carID).
		UpdateColumn("quantity", gorm.Expr("quantity + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateReservation inserts the reservation row.
func (r *Repository) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// FindReservation loads one reservation by id.
func (r *Repository) FindReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// DeleteReservation hard-deletes the reservation row.
func (r *Repository) DeleteReservation(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reservation{}, "id = ?", id).Error
}

// ListReservations loads all reservations with their car preloaded, in
// primary-key order.
func (r *Repository) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Car").
		Order("id").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
