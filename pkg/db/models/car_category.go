package models

import "github.com/shopspring/decimal"

// CarCategory is read-mostly reference data describing a class of vehicle
// and its daily rate. Rows are created by seeding or admin action only.
type CarCategory struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	Title       string          `gorm:"column:title;size:50;not null"`
	Image       string          `gorm:"column:image;size:255"`
	Description string          `gorm:"column:description;type:text"`
	Rate        decimal.Decimal `gorm:"column:rate;type:numeric(10,2)"`
}

func (CarCategory) TableName() string {
	return "car_categories"
}
