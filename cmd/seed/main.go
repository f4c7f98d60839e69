package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tmtsbahamas/rentals-backend/pkg/config"
	"github.com/tmtsbahamas/rentals-backend/pkg/db"
	"github.com/tmtsbahamas/rentals-backend/pkg/db/models"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
)

// Seeds the fleet and its categories. Existing reference data is replaced;
// reservations are left alone.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	cars := fleetCars()
	categories := fleetCategories()

	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CarCategory{}).Error; err != nil {
			return fmt.Errorf("clearing categories: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Car{}).Error; err != nil {
			return fmt.Errorf("clearing cars: %w", err)
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("seeding categories: %w", err)
		}
		if err := tx.Create(&cars).Error; err != nil {
			return fmt.Errorf("seeding cars: %w", err)
		}
		return nil
	})
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{"cars": len(cars), "categories": len(categories)})
	logg.Info(ctx, "database seeded")
}

func fleetCars() []models.Car {
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []models.Car{
		{Name: "Ford Focus", Model: "2023", Category: "Economy", PricePerDay: price(70), Quantity: 3},
		{Name: "Chevy Cruze", Model: "2023", Category: "Economy", PricePerDay: price(70), Quantity: 3},
		{Name: "Kia Forte", Model: "2023", Category: "Economy", PricePerDay: price(70), Quantity: 1},
		{Name: "Ford Fusion", Model: "2023", Category: "Sedan", PricePerDay: price(80), Quantity: 2},
		{Name: "Dodge Caravan", Model: "2023", Category: "Van", PricePerDay: price(120), Quantity: 3},
		{Name: "Chevy Orlando", Model: "2023", Category: "Van", PricePerDay: price(120), Quantity: 1},
		{Name: "Dodge Journey", Model: "2023", Category: "SUV", PricePerDay: price(90), Quantity: 8},
		{Name: "Suburban", Model: "2023", Category: "Luxury", PricePerDay: price(165), Quantity: 1},
		{Name: "Lincoln MKT", Model: "2023", Category: "Luxury", PricePerDay: price(165), Quantity: 1},
		{Name: "Audi Q7", Model: "2023", Category: "Luxury", PricePerDay: price(165), Quantity: 1},
	}
}

func fleetCategories() []models.CarCategory {
	rate := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []models.CarCategory{
		{ID: 1, Title: "Economy", Image: "/assets/economy.png", Description: "Chevy Cruze, Kia Forte, Ford Focus", Rate: rate(70)},
		{ID: 2, Title: "Sedan", Image: "/assets/sedan.png", Description: "Ford Fusion", Rate: rate(80)},
		{ID: 3, Title: "Van", Image: "/assets/van.png", Description: "Dodge Caravan, Chevy Orlando", Rate: rate(120)},
		{ID: 4, Title: "SUV", Image: "/assets/suv.png", Description: "Dodge Journey", Rate: rate(90)},
		{ID: 5, Title: "Luxury", Image: "/assets/luxury.png", Description: "Suburban, Lincoln MKT, Audi Q7", Rate: rate(165)},
	}
}
