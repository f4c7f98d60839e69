package mailer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tmtsbahamas/rentals-backend/pkg/config"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
)

type fakeTransport struct {
	configured bool
	failTo     string
	sent       []Message
}

func (f *fakeTransport) Configured() bool { return f.configured }

func (f *fakeTransport) Send(_ context.Context, msg Message) error {
	if f.failTo != "" && msg.To == f.failTo {
		return errors.New("delivery refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testService(transport Transport) *Service {
	cfg := config.MailConfig{AdminEmail: "info@tmtsbahamas.com", FromName: "TMT Coconut Cruisers", FromEmail: "bookings@tmtsbahamas.com"}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	return NewService(transport, cfg, logg, nil)
}

func sampleBooking() BookingDetails {
	return BookingDetails{
		Reference:  "TMT-20260901-42",
		Firstname:  "Ava",
		Lastname:   "Rolle",
		Email:      "ava@example.com",
		Phone:      "242-555-0101",
		CarName:    "Toyota RAV4",
		Category:   "SUV",
		StartDate:  "2026-09-05",
		EndDate:    "2026-09-08",
		RentalDays: 3,
		DailyRate:  decimal.NewFromInt(85),
		TotalPrice: decimal.NewFromInt(255),
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	transport := &fakeTransport{configured: true}
	svc := testService(transport)

	if ok := svc.SendBookingConfirmation(context.Background(), sampleBooking()); !ok {
		t.Fatal("expected send to succeed")
	}
	if len(transport.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(transport.sent))
	}

	msg := transport.sent[0]
	if msg.To != "ava@example.com" {
		t.Errorf("to = %q", msg.To)
	}
	if msg.Subject != "Booking Confirmation #TMT-20260901-42 - TMT's Coconut Cruisers" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if len(msg.BCC) != 1 || msg.BCC[0] != "info@tmtsbahamas.com" {
		t.Errorf("bcc = %v", msg.BCC)
	}
	for _, want := range []string{"TMT-20260901-42", "Ava Rolle", "Toyota RAV4", "SUV", "$85.00", "$255.00", "3 days"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("html missing %q", want)
		}
		if !strings.Contains(msg.Text, want) {
			t.Errorf("text missing %q", want)
		}
	}
}

func TestSendBookingConfirmationUnconfigured(t *testing.T) {
	transport := &fakeTransport{configured: false}
	svc := testService(transport)

	if ok := svc.SendBookingConfirmation(context.Background(), sampleBooking()); ok {
		t.Fatal("expected send to report failure when unconfigured")
	}
	if len(transport.sent) != 0 {
		t.Fatalf("unconfigured transport was asked to send %d messages", len(transport.sent))
	}
}

func TestSendContactMessagesIndependent(t *testing.T) {
	sub := ContactSubmission{
		Name:    "Eli Knowles",
		Email:   "eli@example.com",
		Phone:   "242-555-0199",
		Message: "Do you rent jeeps in October?",
	}

	// Admin delivery fails, submitter confirmation still goes out.
	transport := &fakeTransport{configured: true, failTo: "info@tmtsbahamas.com"}
	svc := testService(transport)

	result := svc.SendContactMessages(context.Background(), sub)
	if result.AdminNotified {
		t.Error("expected admin notification to fail")
	}
	if !result.SubmitterConfirmed {
		t.Error("expected submitter confirmation to succeed")
	}
	if len(transport.sent) != 1 || transport.sent[0].To != "eli@example.com" {
		t.Fatalf("sent = %+v", transport.sent)
	}
	if !strings.Contains(transport.sent[0].HTML, "Eli Knowles") {
		t.Error("confirmation missing submitter name")
	}
}

func TestSendContactMessagesBothSucceed(t *testing.T) {
	transport := &fakeTransport{configured: true}
	svc := testService(transport)

	result := svc.SendContactMessages(context.Background(), ContactSubmission{
		Name:    "Eli Knowles",
		Email:   "eli@example.com",
		Message: "Hello",
	})
	if !result.AdminNotified || !result.SubmitterConfirmed {
		t.Fatalf("result = %+v", result)
	}
	if len(transport.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(transport.sent))
	}
	if transport.sent[0].To != "info@tmtsbahamas.com" {
		t.Errorf("first message to %q, want admin", transport.sent[0].To)
	}
	if !strings.Contains(transport.sent[0].HTML, "Hello") {
		t.Error("admin notification missing message body")
	}
}

func TestSendAdminEmail(t *testing.T) {
	transport := &fakeTransport{configured: true}
	svc := testService(transport)

	ok := svc.SendAdminEmail(context.Background(), Message{
		To:      "partner@example.com",
		Subject: "Fleet update",
		HTML:    "<p>Two new SUVs this week.</p>",
	})
	if !ok || len(transport.sent) != 1 {
		t.Fatalf("ok=%v sent=%d", ok, len(transport.sent))
	}
}

func TestBuildMIME(t *testing.T) {
	payload := string(buildMIME("TMT Coconut Cruisers <bookings@tmtsbahamas.com>", Message{
		To:      "guest@example.com",
		Subject: "Hi",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	}))

	for _, want := range []string{
		"From: TMT Coconut Cruisers <bookings@tmtsbahamas.com>",
		"To: guest@example.com",
		"Content-Type: multipart/alternative",
		"Content-Type: text/plain; charset=utf-8",
		"Content-Type: text/html; charset=utf-8",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("mime payload missing %q", want)
		}
	}
	if strings.Index(payload, "text/plain") > strings.Index(payload, "text/html") {
		t.Error("text part should precede html part")
	}
}
