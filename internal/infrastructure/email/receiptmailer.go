package email

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// Receipt is what the requester is told after intake.
type Receipt struct {
	To       string
	FullName string
	PublicID string
	Company  string
}

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type ReceiptMailer struct {
	config SMTPConfig
	sender sender
}

func NewReceiptMailer(config SMTPConfig) *ReceiptMailer {
	return &ReceiptMailer{
		config: config,
		sender: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (s *ReceiptMailer) SendReceipt(r Receipt) error {
	if r.To == "" {
		return nil
	}

	subject := fmt.Sprintf("Request %s received", r.PublicID)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Dear %s,</p>
			<p>Your request on behalf of %s has been received and assigned number <b>%s</b>.</p>
			<p>Use this number together with your company INN to track its progress.</p>
		</body>
		</html>
	`, html.EscapeString(r.FullName), html.EscapeString(r.Company), html.EscapeString(r.PublicID))

	plainBody := fmt.Sprintf(`
Dear %s,

Your request on behalf of %s has been received and assigned number %s.

Use this number together with your company INN to track its progress.
	`, r.FullName, r.Company, r.PublicID)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", r.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt: %w", err)
	}
	return nil
}
