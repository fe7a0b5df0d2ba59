// File: /services/email_service.go
package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"eventhub-api/config"
	"eventhub-api/models"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendBookingConfirmation emails the user once their booking is
// confirmed. Failures are logged, never surfaced to the booking flow.
func (es *EmailService) SendBookingConfirmation(user *models.User, booking *models.Booking, event *models.Event) {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Booking confirmed 🎉</h2>
    <p>Hi %s,</p>
    <p>Your booking for <strong>%s</strong> is confirmed.</p>
    <ul>
        <li>Date: %s</li>
        <li>Location: %s</li>
        <li>Persons: %d</li>
        <li>Amount paid: %.2f</li>
    </ul>
    <p>Booking reference: %s</p>
    <p>See you there!<br>The EventHub Team</p>
</body>
</html>`,
		user.Name,
		event.Name,
		event.EventDate.Format(time.RFC1123),
		event.Location,
		booking.Quantity,
		booking.Amount,
		booking.ID,
	)

	es.send(user.Email, fmt.Sprintf("EventHub - Booking confirmed for %s", event.Name), htmlBody)
}

// SendHostRequestDecision emails the user the outcome of their host
// application.
func (es *EmailService) SendHostRequestDecision(user *models.User, request *models.HostRequest) {
	outcome := "approved"
	detail := "You can now create and manage your own events."
	if request.Status == models.HostRequestRejected {
		outcome = "rejected"
		detail = "You can submit a new request at any time."
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Host request %s</h2>
    <p>Hi %s,</p>
    <p>Your request to become an event host has been <strong>%s</strong>.</p>
    <p>%s</p>
    <p>%s</p>
    <p>The EventHub Team</p>
</body>
</html>`,
		outcome,
		user.Name,
		outcome,
		request.Note,
		detail,
	)

	es.send(user.Email, "EventHub - Host request "+outcome, htmlBody)
}

func (es *EmailService) send(to, subject, htmlBody string) {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		logrus.WithError(err).WithField("to", to).Warn("Failed to send email")
	}
}
