package mailer

import (
	"fmt"
	html "html/template"
	"strings"
	text "text/template"
	"time"

	"github.com/shopspring/decimal"
)

// BookingDetails feeds the confirmation templates. Dates arrive already
// formatted for display.
type BookingDetails struct {
	Reference  string
	Firstname  string
	Lastname   string
	Email      string
	Phone      string
	CarName    string
	Category   string
	StartDate  string
	EndDate    string
	RentalDays int
	DailyRate  decimal.Decimal
	TotalPrice decimal.Decimal
}

// ContactSubmission is a message from the public contact form.
type ContactSubmission struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type bookingTemplateData struct {
	BookingDetails
	DailyRateDisplay  string
	TotalPriceDisplay string
	Year              int
}

const bookingSubjectFormat = "Booking Confirmation #%s - TMT's Coconut Cruisers"

var bookingHTMLTemplate = html.Must(html.New("booking_html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background-color: #f5f5f5;">
  <div style="background-color: white; margin: 20px auto;">
    <div style="background: #2c3e50; color: white; padding: 30px; text-align: center;">
      <h1 style="margin: 0;">TMT's Coconut Cruisers</h1>
      <p style="margin: 10px 0 0;">Booking Confirmation &amp; Receipt</p>
    </div>
    <div style="padding: 30px;">
      <p>Dear <strong>{{.Firstname}} {{.Lastname}}</strong>,</p>
      <p>Thank you for choosing TMT's Coconut Cruisers! Your booking has been confirmed and your payment has been processed successfully.</p>
      <div style="background: #f9f9f9; border: 2px solid #e0e0e0; border-radius: 8px; padding: 20px; margin: 20px 0;">
        <div style="text-align: center; border-bottom: 2px dashed #ccc; padding-bottom: 15px; margin-bottom: 20px;">
          <div style="font-size: 20px; font-weight: bold; color: #2c3e50;">Booking Reference</div>
          <div style="font-size: 24px; color: #3498db; margin-top: 5px;">{{.Reference}}</div>
        </div>
        <h3 style="color: #2c3e50;">Rental Details</h3>
        <p>Customer: {{.Firstname}} {{.Lastname}}<br>
        Email: {{.Email}}<br>
        Phone: {{.Phone}}<br>
        Vehicle: <strong>{{.CarName}}</strong> ({{.Category}})<br>
        Pickup Date: {{.StartDate}}<br>
        Return Date: {{.EndDate}}<br>
        Rental Duration: {{.RentalDays}} days<br>
        Daily Rate: ${{.DailyRateDisplay}}</p>
        <p style="font-size: 20px; font-weight: bold; color: #2c3e50; border-top: 2px solid #333; padding-top: 10px;">TOTAL PAID: ${{.TotalPriceDisplay}} USD</p>
      </div>
      <div style="background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0;">
        <h3 style="margin-top: 0; color: #856404;">Important Information</h3>
        <ul>
          <li><strong>Pickup Location:</strong> Deadman's Cay, Bahamas</li>
          <li><strong>Required at Pickup:</strong> Valid driver's license &amp; $100 security deposit</li>
          <li><strong>Additional Fee:</strong> $10 for pickup/drop-off beyond Deadman's Cay</li>
          <li><strong>Pickup Time:</strong> 8:00 AM - 6:00 PM</li>
        </ul>
      </div>
      <p>Need help? Contact us at <a href="mailto:info@tmtsbahamas.com">info@tmtsbahamas.com</a> or +1 (242) 472-0016.</p>
    </div>
    <div style="background-color: #2c3e50; color: white; padding: 20px; text-align: center; font-size: 12px;">
      <p><strong>TMT's Coconut Cruisers</strong><br>Deadman's Cay, Long Island, Bahamas</p>
      <p>This is an automated confirmation email. Please do not reply directly to this email.</p>
      <p style="font-size: 10px;">&copy; {{.Year}} TMT's Coconut Cruisers. All rights reserved.</p>
    </div>
  </div>
</body>
</html>
`))

var bookingTextTemplate = text.Must(text.New("booking_text").Parse(`TMT's Coconut Cruisers - Booking Confirmation & Receipt
========================================================

Booking Reference: {{.Reference}}

Dear {{.Firstname}} {{.Lastname}},

Thank you for choosing TMT's Coconut Cruisers! Your booking has been confirmed.

RENTAL DETAILS
--------------
Customer: {{.Firstname}} {{.Lastname}}
Email: {{.Email}}
Phone: {{.Phone}}

Vehicle: {{.CarName}} ({{.Category}})
Pickup Date: {{.StartDate}}
Return Date: {{.EndDate}}
Rental Duration: {{.RentalDays}} days
Daily Rate: ${{.DailyRateDisplay}}

TOTAL PAID: ${{.TotalPriceDisplay}} USD

IMPORTANT INFORMATION
--------------------
- Pickup Location: Deadman's Cay, Bahamas
- Required at Pickup: Valid driver's license & $100 security deposit
- Additional Fee: $10 for pickup/drop-off beyond Deadman's Cay
- Pickup Time: 8:00 AM - 6:00 PM

CONTACT US
----------
Email: info@tmtsbahamas.com
Phone: +1 (242) 472-0016 or +1 (242) 367-0942

Thank you for your business!

TMT's Coconut Cruisers Team
`))

var contactAdminHTMLTemplate = html.Must(html.New("contact_admin_html").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>New Contact Form Message</h2>
  <p><strong>Name:</strong> {{.Name}}<br>
  <strong>Email:</strong> {{.Email}}<br>
  <strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Message:</strong></p>
  <p>{{.Message}}</p>
</body>
</html>
`))

var contactConfirmHTMLTemplate = html.Must(html.New("contact_confirm_html").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>We received your message</h2>
  <p>Dear {{.Name}},</p>
  <p>Thanks for reaching out to TMT's Coconut Cruisers. Our team will get back to you shortly.</p>
  <p>For urgent requests, call +1 (242) 472-0016 or +1 (242) 367-0942.</p>
  <p>TMT's Coconut Cruisers Team</p>
</body>
</html>
`))

func renderBookingConfirmation(details BookingDetails) (Message, error) {
	data := bookingTemplateData{
		BookingDetails:    details,
		DailyRateDisplay:  details.DailyRate.StringFixed(2),
		TotalPriceDisplay: details.TotalPrice.StringFixed(2),
		Year:              time.Now().Year(),
	}

	var htmlBody, textBody strings.Builder
	if err := bookingHTMLTemplate.Execute(&htmlBody, data); err != nil {
		return Message{}, fmt.Errorf("rendering booking html: %w", err)
	}
	if err := bookingTextTemplate.Execute(&textBody, data); err != nil {
		return Message{}, fmt.Errorf("rendering booking text: %w", err)
	}

	return Message{
		To:      details.Email,
		Subject: fmt.Sprintf(bookingSubjectFormat, details.Reference),
		HTML:    htmlBody.String(),
		Text:    textBody.String(),
	}, nil
}

func renderContactAdmin(sub ContactSubmission, adminEmail string) (Message, error) {
	var htmlBody strings.Builder
	if err := contactAdminHTMLTemplate.Execute(&htmlBody, sub); err != nil {
		return Message{}, fmt.Errorf("rendering contact admin html: %w", err)
	}
	return Message{
		To:      adminEmail,
		Subject: fmt.Sprintf("New contact form message from %s", sub.Name),
		HTML:    htmlBody.String(),
		Text: fmt.Sprintf("New contact form message\n\nName: %s\nEmail: %s\nPhone: %s\n\n%s\n",
			sub.Name, sub.Email, sub.Phone, sub.Message),
	}, nil
}

func renderContactConfirmation(sub ContactSubmission) (Message, error) {
	var htmlBody strings.Builder
	if err := contactConfirmHTMLTemplate.Execute(&htmlBody, sub); err != nil {
		return Message{}, fmt.Errorf("rendering contact confirmation html: %w", err)
	}
	return Message{
		To:      sub.Email,
		Subject: "We received your message - TMT's Coconut Cruisers",
		HTML:    htmlBody.String(),
		Text: fmt.Sprintf("Dear %s,\n\nThanks for reaching out to TMT's Coconut Cruisers. Our team will get back to you shortly.\n\nTMT's Coconut Cruisers Team\n",
			sub.Name),
	}, nil
}
