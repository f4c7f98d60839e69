package fleet

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tmtsbahamas/rentals-backend/pkg/db"
	"github.com/tmtsbahamas/rentals-backend/pkg/db/models"
)

var dbCounter int

func newTestClient(t *testing.T) *db.Client {
	t.Helper()
	dbCounter++
	dsn := fmt.Sprintf("file:fleet_%d?mode=memory&cache=shared", dbCounter)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.CarCategory{}, &models.Car{}, &models.Reservation{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db.FromConn(conn)
}

func TestListCategories(t *testing.T) {
	client := newTestClient(t)
	seed := []models.CarCategory{
		{Title: "SUV", Image: "suv.jpg", Description: "Roomy and rugged", Rate: decimal.NewFromInt(85)},
		{Title: "Sedan", Image: "sedan.jpg", Description: "Comfortable daily driver", Rate: decimal.NewFromFloat(65.50)},
	}
	if err := client.DB().Create(&seed).Error; err != nil {
		t.Fatalf("seeding: %v", err)
	}

	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(categories))
	}
	if categories[0].Title != "SUV" || categories[0].Rate != 85 {
		t.Errorf("first category = %+v", categories[0])
	}
	if categories[1].Rate != 65.5 {
		t.Errorf("second category rate = %v", categories[1].Rate)
	}
}

func TestListCars(t *testing.T) {
	client := newTestClient(t)
	seed := []models.Car{
		{Name: "Toyota RAV4", Model: "2022", Category: "SUV", PricePerDay: decimal.NewFromInt(85), Quantity: 3},
		{Name: "Honda Accord", Model: "2021", Category: "Sedan", PricePerDay: decimal.NewFromFloat(65.50), Quantity: 0},
	}
	if err := client.DB().Create(&seed).Error; err != nil {
		t.Fatalf("seeding: %v", err)
	}

	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cars, err := svc.ListCars(context.Background())
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if len(cars) != 2 {
		t.Fatalf("got %d cars, want 2", len(cars))
	}
	if cars[0].Name != "Toyota RAV4" || cars[0].Quantity != 3 || cars[0].PricePerDay != 85 {
		t.Errorf("first car = %+v", cars[0])
	}
	if cars[1].Quantity != 0 {
		t.Errorf("second car quantity = %d, want 0", cars[1].Quantity)
	}
}

func TestListCarsEmpty(t *testing.T) {
	client := newTestClient(t)
	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cars, err := svc.ListCars(context.Background())
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if cars == nil || len(cars) != 0 {
		t.Fatalf("want empty non-nil slice, got %v", cars)
	}
}
