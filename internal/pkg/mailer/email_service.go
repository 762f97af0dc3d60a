package mailer

import (
	"fmt"
	"html"
	"log"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendLogSummary(toEmail, label, summary string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendLogSummary mails a completed watch log. The markdown summary is sent
// preformatted rather than rendered.
func (s *emailService) SendLogSummary(toEmail, label, summary string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Watch log completed: %s", label))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Watch log completed</h2>
			<p>A guided log for <strong>%s</strong> has been recorded.</p>
			<pre style="background: #f6f8fa; padding: 12px; white-space: pre-wrap;">%s</pre>
		</div>
	`, html.EscapeString(label), html.EscapeString(summary))
	m.SetBody("text/plain", summary)
	m.AddAlternative("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("[MAILER ERROR] Failed to send log summary to %s: %v", toEmail, err)
		return err
	}

	log.Printf("[MAILER] Log summary sent to %s", toEmail)
	return nil
}
