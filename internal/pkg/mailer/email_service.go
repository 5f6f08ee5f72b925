// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBookingConfirmation(toEmail, className string, startTime time.Time) error
	SendBookingCancelled(toEmail, className string, refund int64) error
	SendCreditsReceived(toEmail string, amount int64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendBookingConfirmation(toEmail, className string, startTime time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your class is booked")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>You're in!</h2>
			<p>Your spot in <b>%s</b> is confirmed.</p>
			<p>Starts: %s</p>
			<p>See you there.</p>
		</div>
	`, className, startTime.Format("Monday, Jan 2 at 15:04"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send booking confirmation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Booking confirmation sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendBookingCancelled(toEmail, className string, refund int64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Booking cancelled")

	refundLine := "No credits were refunded for this cancellation."
	if refund > 0 {
		refundLine = fmt.Sprintf("%d credits were returned to your balance.", refund)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking cancelled</h2>
			<p>Your booking for <b>%s</b> has been cancelled.</p>
			<p>%s</p>
		</div>
	`, className, refundLine)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send cancellation notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Cancellation notice sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendCreditsReceived(toEmail string, amount int64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Credits added to your account")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Credits received</h2>
			<h1 style="color: #4CAF50;">%d</h1>
			<p>credits were added to your balance. Book your next class any time.</p>
		</div>
	`, amount)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send credits notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Credits notice sent to %s\n", toEmail)
	return nil
}
