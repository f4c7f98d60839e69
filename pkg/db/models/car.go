package models

import "github.com/shopspring/decimal"

// Car is a bookable model in the fleet. Quantity is the shared pool of
// simultaneously bookable units and is the sole availability signal; it is
// decremented on booking and restored on cancellation, and must never go
// negative. Category mirrors CarCategory.Title as a free-text label, not a
// foreign key, matching the persisted schema.
type Car struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name;size:100;not null"`
	Model       string          `gorm:"column:model;size:50"`
	Category    string          `gorm:"column:category;size:50;not null"`
	PricePerDay decimal.Decimal `gorm:"column:price_per_day;type:numeric(10,2)"`
	// No gorm default tag: gorm skips zero values for defaulted columns on
	// insert, which would turn a sold-out car into quantity 1. The column
	// default lives in the migration only.
	Quantity    int             `gorm:"column:quantity;not null"`
}

func (Car) TableName() string {
	return "cars"
}
