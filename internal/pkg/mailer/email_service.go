package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOTP(toEmail, otp string) error
	SendBookingConfirmation(toEmail, bookingID, lawyerName, date, slot string) error
	SendBookingReminder(toEmail, lawyerName, date, slot string) error
	SendBookingCancelled(toEmail, bookingID string, refundPercentage int) error
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

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendOTP(toEmail, otp string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to Legal Consult!</h2>
			<p>Your verification code is:</p>
			<h1 style="color: #4CAF50; letter-spacing: 5px;">%s</h1>
			<p>This code will expire in 15 minutes.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, otp)

	return s.send(toEmail, "Your Verification Code", body)
}

func (s *emailService) SendBookingConfirmation(toEmail, bookingID, lawyerName, date, slot string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking Received</h2>
			<p>Your consultation with <b>%s</b> is reserved for <b>%s</b>, %s.</p>
			<p>Booking reference: <code>%s</code></p>
			<p>Please complete the bank transfer using the QR code in the app. Keep the reference in the transfer description so we can match your payment.</p>
		</div>
	`, lawyerName, date, slot, bookingID)

	return s.send(toEmail, "Your Consultation Booking", body)
}

func (s *emailService) SendBookingReminder(toEmail, lawyerName, date, slot string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Upcoming Consultation</h2>
			<p>This is a reminder that your consultation with <b>%s</b> starts in about an hour, at %s on %s.</p>
		</div>
	`, lawyerName, slot, date)

	return s.send(toEmail, "Consultation Reminder", body)
}

func (s *emailService) SendBookingCancelled(toEmail, bookingID string, refundPercentage int) error {
	refundLine := "No refund applies under the cancellation policy."
	if refundPercentage > 0 {
		refundLine = fmt.Sprintf("A refund of %d%% of the consultation fee will be processed.", refundPercentage)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking Cancelled</h2>
			<p>Your booking <code>%s</code> has been cancelled.</p>
			<p>%s</p>
		</div>
	`, bookingID, refundLine)

	return s.send(toEmail, "Booking Cancelled", body)
}
