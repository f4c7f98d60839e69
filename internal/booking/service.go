package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tmtsbahamas/rentals-backend/internal/mailer"
	"github.com/tmtsbahamas/rentals-backend/pkg/db"
	"github.com/tmtsbahamas/rentals-backend/pkg/db/models"
	pkgerrors "github.com/tmtsbahamas/rentals-backend/pkg/errors"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
	"github.com/tmtsbahamas/rentals-backend/pkg/metrics"
)

// Service exposes reservation lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	Cancel(ctx context.Context, id uint) error
	List(ctx context.Context) ([]ReservationDTO, int, error)
}

// CreateInput holds the booking request payload. Dates stay as raw strings
// so the car checks run before date parsing, preserving the endpoint's
// error precedence.
type CreateInput struct {
	CarID      uint
	Firstname  string
	Lastname   string
	Email      string
	Home       *string
	Cell       *string
	StartDate  string
	EndDate    string
	TotalPrice decimal.Decimal
}

// CreateResult reports the persisted booking.
type CreateResult struct {
	ReservationID uint
	Reference     string
	EmailSent     bool
}

// ReservationDTO is the wire shape of one reservation.
type ReservationDTO struct {
	ID         uint    `json:"id"`
	Firstname  string  `json:"firstname"`
	Lastname   string  `json:"lastname"`
	Email      string  `json:"email"`
	Home       *string `json:"home"`
	Cell       *string `json:"cell"`
	CarID      uint    `json:"car_id"`
	CarName    string  `json:"car_name"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
}

// confirmationSender is the slice of the mailer the booking path needs.
type confirmationSender interface {
	SendBookingConfirmation(ctx context.Context, details mailer.BookingDetails) bool
}

const (
	dateFormatISO  = "2006-01-02"
	dateFormatLong = "January 2, 2006"
)

const unknownCarName = "Unknown"

type serviceImpl struct {
	client  *db.Client
	repo    *Repository
	mail    confirmationSender
	logg    *logger.Logger
	metrics *metrics.APIMetrics
}

func NewService(client *db.Client, mail confirmationSender, logg *logger.Logger, m *metrics.APIMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &serviceImpl{
		client:  client,
		repo:    NewRepository(client.DB()),
		mail:    mail,
		logg:    logg,
		metrics: m,
	}, nil
}

func (s *serviceImpl) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if err := validateRequired(input); err != nil {
		return nil, err
	}

	car, err := s.repo.FindCar(ctx, input.CarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Car not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load car")
	}

	if car.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnavailable, "Car is not available")
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid start_date format, expected YYYY-MM-DD")
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid end_date format, expected YYYY-MM-DD")
	}

	reservation := &models.Reservation{
		Firstname:  input.Firstname,
		Lastname:   input.Lastname,
		Email:      input.Email,
		Home:       input.Home,
		Cell:       input.Cell,
		CarID:      car.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalPrice: input.TotalPrice,
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		decremented, err := txRepo.DecrementCarQuantity(ctx, car.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update car availability")
		}
		if !decremented {
			return pkgerrors.New(pkgerrors.CodeUnavailable, "Car is not available")
		}

		if err := txRepo.CreateReservation(ctx, reservation); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create reservation")
		}
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create reservation")
	}

	ctx = s.logg.WithReservationID(ctx, reservation.ID)
	s.logg.Info(ctx, "reservation created")
	s.metrics.IncBookingCreated()

	reference := bookingReference(reservation.ID, time.Now())
	emailSent := s.sendConfirmation(ctx, reservation, car, reference)

	return &CreateResult{
		ReservationID: reservation.ID,
		Reference:     reference,
		EmailSent:     emailSent,
	}, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id uint) error {
	reservation, err := s.repo.FindReservation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Reservation not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load reservation")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		restored, err := txRepo.IncrementCarQuantity(ctx, reservation.CarID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to restore car availability")
		}
		if !restored {
			// The car was deleted after the booking. Recoverable; the
			// reservation itself still goes away.
			s.logg.Warn(s.logg.WithCarID(ctx, reservation.CarID), "car missing on cancellation, quantity not restored")
		}

		if err := txRepo.DeleteReservation(ctx, reservation.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete reservation")
		}
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return appErr
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to cancel reservation")
	}

	s.logg.Info(s.logg.WithReservationID(ctx, reservation.ID), "reservation canceled")
	s.metrics.IncBookingCanceled()
	return nil
}

func (s *serviceImpl) List(ctx context.Context) ([]ReservationDTO, int, error) {
	reservations, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list reservations")
	}

	out := make([]ReservationDTO, 0, len(reservations))
	for _, r := range reservations {
		carName := unknownCarName
		if r.Car != nil {
			carName = r.Car.Name
		}
		out = append(out, ReservationDTO{
			ID:         r.ID,
			Firstname:  r.Firstname,
			Lastname:   r.Lastname,
			Email:      r.Email,
			Home:       r.Home,
			Cell:       r.Cell,
			CarID:      r.CarID,
			CarName:    carName,
			StartDate:  r.StartDate.Format(dateFormatISO),
			EndDate:    r.EndDate.Format(dateFormatISO),
			TotalPrice: r.TotalPrice.InexactFloat64(),
			CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, len(out), nil
}

func (s *serviceImpl) sendConfirmation(ctx context.Context, reservation *models.Reservation, car *models.Car, reference string) bool {
	if s.mail == nil {
		return false
	}

	details := mailer.BookingDetails{
		Reference:  reference,
		Firstname:  reservation.Firstname,
		Lastname:   reservation.Lastname,
		Email:      reservation.Email,
		Phone:      contactPhone(reservation),
		CarName:    car.Name,
		Category:   car.Category,
		StartDate:  reservation.StartDate.Format(dateFormatISO),
		EndDate:    reservation.EndDate.Format(dateFormatISO),
		RentalDays: rentalDays(reservation.StartDate, reservation.EndDate),
		DailyRate:  car.PricePerDay,
		TotalPrice: reservation.TotalPrice,
	}
	return s.mail.SendBookingConfirmation(ctx, details)
}

// contactPhone picks the number shown on the receipt. The cell number wins
// when both are present.
func contactPhone(reservation *models.Reservation) string {
	if reservation.Cell != nil && *reservation.Cell != "" {
		return *reservation.Cell
	}
	if reservation.Home != nil && *reservation.Home != "" {
		return *reservation.Home
	}
	return "Not provided"
}

func validateRequired(input CreateInput) error {
	missing := ""
	switch {
	case input.CarID == 0:
		missing = "car_id"
	case input.Firstname == "":
		missing = "firstname"
	case input.Lastname == "":
		missing = "lastname"
	case input.Email == "":
		missing = "email"
	case input.StartDate == "":
		missing = "start_date"
	case input.EndDate == "":
		missing = "end_date"
	case input.TotalPrice.Sign() <= 0:
		missing = "total_price"
	}
	if missing != "" {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Missing required field: %s", missing))
	}
	return nil
}

// parseDate accepts the ISO form and the long form the hosted frontend
// produced ("June 1, 2025").
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateFormatISO, value); err == nil {
		return t, nil
	}
	return time.Parse(dateFormatLong, value)
}

func rentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func bookingReference(id uint, now time.Time) string {
	return fmt.Sprintf("TMT-%s-%d", now.Format("20060102"), id)
}
