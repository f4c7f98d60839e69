package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation links a renter to one car for a date range. Cancellation
// hard-deletes the row and restores the car's quantity.
type Reservation struct {
	ID         uint            `gorm:"column:id;primaryKey"`
	Firstname  string          `gorm:"column:firstname;size:50;not null"`
	Lastname   string          `gorm:"column:lastname;size:50;not null"`
	Email      string          `gorm:"column:email;size:100;not null"`
	Home       *string         `gorm:"column:home;size:20"`
	Cell       *string         `gorm:"column:cell;size:20"`
	CarID      uint            `gorm:"column:car_id;not null"`
	Car        *Car            `gorm:"foreignKey:CarID"`
	StartDate  time.Time       `gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time       `gorm:"column:end_date;type:date;not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Reservation) TableName() string {
	return "reservations"
}
