package fleet

import (
	"context"
	"fmt"

	"github.com/tmtsbahamas/rentals-backend/pkg/db"
	pkgerrors "github.com/tmtsbahamas/rentals-backend/pkg/errors"
)

// Service exposes the read-only fleet catalog.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListCars(ctx context.Context) ([]CarDTO, error)
}

// CategoryDTO is the wire shape of one car category.
type CategoryDTO struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
}

// CarDTO is the wire shape of one fleet car.
type CarDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Model       string  `json:"model"`
	Category    string  `json:"category"`
	PricePerDay float64 `json:"price_per_day"`
	Quantity    int     `json:"quantity"`
}

type serviceImpl struct {
	client *db.Client
	repo   *Repository
}

func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &serviceImpl{
		client: client,
		repo:   NewRepository(client.DB()),
	}, nil
}

func (s *serviceImpl) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list car categories")
	}

	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryDTO{
			ID:          c.ID,
			Title:       c.Title,
			Image:       c.Image,
			Description: c.Description,
			Rate:        c.Rate.InexactFloat64(),
		})
	}
	return out, nil
}

func (s *serviceImpl) ListCars(ctx context.Context) ([]CarDTO, error) {
	cars, err := s.repo.ListCars(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list cars")
	}

	out := make([]CarDTO, 0, len(cars))
	for _, c := range cars {
		out = append(out, CarDTO{
			ID:          c.ID,
			Name:        c.Name,
			Model:       c.Model,
			Category:    c.Category,
			PricePerDay: c.PricePerDay.InexactFloat64(),
			Quantity:    c.Quantity,
		})
	}
	return out, nil
}
