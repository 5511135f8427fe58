package service

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendExpiryDigest(ctx context.Context, recipient string, expiring []ExpiringRental) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("%d instrument rentals expiring soon", len(expiring)))

	var b strings.Builder
	b.WriteString("The following instrument rentals end soon:\n\n")
	for _, e := range expiring {
		fmt.Fprintf(&b, "  - rental %d: %s (student %d), ends %s\n",
			e.RentalID, e.InstrumentName, e.StudentID, e.EndDate.Format("2006-01-02"))
	}
	b.WriteString("\nBest regards,\nThe Soundgood Music School\n")
	m.SetBody("text/plain", b.String())

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send expiry digest: %w", err)
	}
	return nil
}
