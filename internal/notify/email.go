package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendEmail delivers a plain-text message through the configured SMTP
// relay. When SMTP is not configured the message is logged and dropped so
// local setups work without a mail server.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Printf("email (smtp not configured) to=%s subject=%q", to, subject)
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "no-reply@zoomride.local"
	}

	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASS"), host)
	}

	if err := smtp.SendMail(host+":"+port, auth, from, []string{to}, msg); err != nil {
		log.Println("error sending email:", err)
		return err
	}
	return nil
}

// SendWelcomeEmail greets a newly registered user.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to ZoomRide! Your account is ready.\n"+
		"Complete your KYC to start booking or listing cars.\n\nThe ZoomRide Team", name)
	_ = SendEmail(email, "Welcome to ZoomRide", body)
}

// SendBookingStatusEmail tells a renter their booking changed state.
func SendBookingStatusEmail(email, name, carName, status string) {
	body := fmt.Sprintf("Hi %s,\n\nYour booking for %s is now %s.\n\nThe ZoomRide Team",
		name, carName, status)
	_ = SendEmail(email, "Booking "+status, body)
}
