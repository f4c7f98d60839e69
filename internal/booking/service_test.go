package booking

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tmtsbahamas/rentals-backend/internal/mailer"
	"github.com/tmtsbahamas/rentals-backend/pkg/db"
	"github.com/tmtsbahamas/rentals-backend/pkg/db/models"
	pkgerrors "github.com/tmtsbahamas/rentals-backend/pkg/errors"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
)

type fakeConfirmationSender struct {
	result bool
	sent   []mailer.BookingDetails
}

func (f *fakeConfirmationSender) SendBookingConfirmation(_ context.Context, details mailer.BookingDetails) bool {
	f.sent = append(f.sent, details)
	return f.result
}

var dbCounter int

func newTestClient(t *testing.T) *db.Client {
	t.Helper()
	dbCounter++
	dsn := fmt.Sprintf("file:booking_%d?mode=memory&cache=shared", dbCounter)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.CarCategory{}, &models.Car{}, &models.Reservation{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db.FromConn(conn)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func seedCar(t *testing.T, client *db.Client, quantity int) *models.Car {
	t.Helper()
	car := &models.Car{
		Name:        "Toyota RAV4",
		Model:       "2022",
		Category:    "SUV",
		PricePerDay: decimal.NewFromInt(85),
		Quantity:    quantity,
	}
	if err := client.DB().Create(car).Error; err != nil {
		t.Fatalf("seeding car: %v", err)
	}
	return car
}

func carQuantity(t *testing.T, client *db.Client, id uint) int {
	t.Helper()
	var car models.Car
	if err := client.DB().First(&car, "id = ?", id).Error; err != nil {
		t.Fatalf("loading car: %v", err)
	}
	return car.Quantity
}

func reservationCount(t *testing.T, client *db.Client) int64 {
	t.Helper()
	var count int64
	if err := client.DB().Model(&models.Reservation{}).Count(&count).Error; err != nil {
		t.Fatalf("counting reservations: %v", err)
	}
	return count
}

func validInput(carID uint) CreateInput {
	return CreateInput{
		CarID:      carID,
		Firstname:  "Ava",
		Lastname:   "Rolle",
		Email:      "ava@example.com",
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-05",
		TotalPrice: decimal.NewFromInt(350),
	}
}

func TestCreateReservation(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 3)
	sender := &fakeConfirmationSender{result: true}

	svc, err := NewService(client, sender, testLogger(), nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Create(context.Background(), validInput(car.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if result.ReservationID == 0 {
		t.Error("expected reservation id to be assigned")
	}
	if !result.EmailSent {
		t.Error("expected email_sent true")
	}
	if got := carQuantity(t, client, car.ID); got != 2 {
		t.Errorf("quantity = %d, want 2", got)
	}

	reservations, total, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(reservations) != 1 {
		t.Fatalf("total = %d, len = %d, want 1", total, len(reservations))
	}
	r := reservations[0]
	if r.CarName != "Toyota RAV4" {
		t.Errorf("car_name = %q", r.CarName)
	}
	if r.StartDate != "2025-06-01" || r.EndDate != "2025-06-05" {
		t.Errorf("dates = %q / %q", r.StartDate, r.EndDate)
	}
	if r.TotalPrice != 350 {
		t.Errorf("total_price = %v", r.TotalPrice)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d confirmations, want 1", len(sender.sent))
	}
	details := sender.sent[0]
	if details.RentalDays != 4 {
		t.Errorf("rental days = %d, want 4", details.RentalDays)
	}
	if details.Reference == "" || details.Reference[:4] != "TMT-" {
		t.Errorf("reference = %q", details.Reference)
	}
}

func TestCreateReservationLongDateForm(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 1)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	input := validInput(car.ID)
	input.StartDate = "June 1, 2025"
	input.EndDate = "June 5, 2025"

	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("Create with long date form: %v", err)
	}

	reservations, _, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if reservations[0].StartDate != "2025-06-01" {
		t.Errorf("start_date = %q, want ISO form", reservations[0].StartDate)
	}
}

func TestCreateReservationCarUnavailable(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 0)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	_, err := svc.Create(context.Background(), validInput(car.ID))
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnavailable {
		t.Fatalf("err = %v, want unavailable", err)
	}
	if got := carQuantity(t, client, car.ID); got != 0 {
		t.Errorf("quantity = %d, want 0", got)
	}
	if n := reservationCount(t, client); n != 0 {
		t.Errorf("reservations persisted = %d, want 0", n)
	}
}

func TestCreateReservationCarNotFound(t *testing.T) {
	client := newTestClient(t)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	_, err := svc.Create(context.Background(), validInput(999))
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCreateReservationMissingField(t *testing.T) {
	client := newTestClient(t)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	// Required-field check runs before the car lookup, so a missing name
	// wins over the nonexistent car.
	input := validInput(999)
	input.Firstname = ""

	_, err := svc.Create(context.Background(), input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateReservationMissingTotalPrice(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 2)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	input := validInput(car.ID)
	input.TotalPrice = decimal.Zero

	_, err := svc.Create(context.Background(), input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation", err)
	}
	if appErr.Message() != "Missing required field: total_price" {
		t.Errorf("message = %q", appErr.Message())
	}
	if got := carQuantity(t, client, car.ID); got != 2 {
		t.Errorf("quantity = %d, want 2 untouched", got)
	}
	if n := reservationCount(t, client); n != 0 {
		t.Errorf("reservations persisted = %d, want 0", n)
	}
}

func TestCreateReservationBadDate(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 2)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	input := validInput(car.ID)
	input.StartDate = "06/01/2025"

	_, err := svc.Create(context.Background(), input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation", err)
	}
	if got := carQuantity(t, client, car.ID); got != 2 {
		t.Errorf("quantity = %d, want 2 untouched", got)
	}
	if n := reservationCount(t, client); n != 0 {
		t.Errorf("reservations persisted = %d, want 0", n)
	}
}

func TestCreateReservationEmailFailureStillBooks(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 1)
	svc, _ := NewService(client, &fakeConfirmationSender{result: false}, testLogger(), nil)

	result, err := svc.Create(context.Background(), validInput(car.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if result.EmailSent {
		t.Error("expected email_sent false")
	}
	if got := carQuantity(t, client, car.ID); got != 0 {
		t.Errorf("quantity = %d, want 0", got)
	}
	if n := reservationCount(t, client); n != 1 {
		t.Errorf("reservations = %d, want 1", n)
	}
}

func TestCancelRestoresQuantity(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 3)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	result, err := svc.Create(context.Background(), validInput(car.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Cancel(context.Background(), result.ReservationID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := carQuantity(t, client, car.ID); got != 3 {
		t.Errorf("quantity = %d, want 3 restored", got)
	}
	if n := reservationCount(t, client); n != 0 {
		t.Errorf("reservations = %d, want 0 after cancel", n)
	}
}

func TestCancelUnknownReservation(t *testing.T) {
	client := newTestClient(t)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	err := svc.Cancel(context.Background(), 404)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCancelWithDeletedCarProceeds(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 1)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	result, err := svc.Create(context.Background(), validInput(car.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := client.DB().Delete(&models.Car{}, "id = ?", car.ID).Error; err != nil {
		t.Fatalf("deleting car: %v", err)
	}

	if err := svc.Cancel(context.Background(), result.ReservationID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if n := reservationCount(t, client); n != 0 {
		t.Errorf("reservations = %d, want 0", n)
	}
}

func TestListReservationsUnknownCar(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 1)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	if _, err := svc.Create(context.Background(), validInput(car.ID)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := client.DB().Delete(&models.Car{}, "id = ?", car.ID).Error; err != nil {
		t.Fatalf("deleting car: %v", err)
	}

	reservations, total, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if reservations[0].CarName != "Unknown" {
		t.Errorf("car_name = %q, want Unknown placeholder", reservations[0].CarName)
	}
}

func TestQuantityNeverNegativeSequential(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 2)
	svc, _ := NewService(client, &fakeConfirmationSender{result: true}, testLogger(), nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), validInput(car.ID)); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	// Pool is empty; further attempts must fail without going negative.
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), validInput(car.ID))
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeUnavailable {
			t.Fatalf("attempt %d: err = %v, want unavailable", i, err)
		}
	}
	if got := carQuantity(t, client, car.ID); got != 0 {
		t.Errorf("quantity = %d, want 0", got)
	}
}

func TestSoldOutCarStoredAsZero(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 0)
	if got := carQuantity(t, client, car.ID); got != 0 {
		t.Fatalf("quantity = %d, want 0 persisted", got)
	}
}

func TestContactPhone(t *testing.T) {
	home := "242-555-0001"
	cell := "242-555-0002"
	empty := ""

	cases := []struct {
		name string
		r    models.Reservation
		want string
	}{
		{"cell wins", models.Reservation{Home: &home, Cell: &cell}, cell},
		{"home fallback", models.Reservation{Home: &home}, home},
		{"empty cell falls back", models.Reservation{Home: &home, Cell: &empty}, home},
		{"neither", models.Reservation{}, "Not provided"},
	}
	for _, tc := range cases {
		if got := contactPhone(&tc.r); got != tc.want {
			t.Errorf("%s: phone = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestConfirmationCarriesPhone(t *testing.T) {
	client := newTestClient(t)
	car := seedCar(t, client, 1)
	sender := &fakeConfirmationSender{result: true}
	svc, _ := NewService(client, sender, testLogger(), nil)

	cell := "242-555-1234"
	input := validInput(car.ID)
	input.Cell = &cell

	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d confirmations, want 1", len(sender.sent))
	}
	if sender.sent[0].Phone != cell {
		t.Errorf("phone = %q, want %q", sender.sent[0].Phone, cell)
	}
}

func TestBookingReference(t *testing.T) {
	got := bookingReference(42, mustDate(t, "2026-09-01"))
	if got != "TMT-20260901-42" {
		t.Errorf("reference = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	iso, err := parseDate("2025-06-01")
	if err != nil {
		t.Fatalf("iso form: %v", err)
	}
	long, err := parseDate("June 1, 2025")
	if err != nil {
		t.Fatalf("long form: %v", err)
	}
	if !iso.Equal(long) {
		t.Errorf("forms disagree: %v vs %v", iso, long)
	}
	if _, err := parseDate("06/01/2025"); err == nil {
		t.Error("expected slash form to be rejected")
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	tm, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parsing %q: %v", value, err)
	}
	return tm
}
