// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSubmissionReceipt(toEmail, periodName string, progress float64) error
	SendPeriodOpened(toEmail, periodName, closesAt string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendSubmissionReceipt(toEmail, periodName string, progress float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Questionnaire Submitted")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thanks for completing your questionnaire!</h2>
			<p>We received your answers for <b>%s</b>.</p>
			<p>Answered before submission: <b>%.0f%%</b> (skipped questions were filled with neutral defaults).</p>
			<p>You can still review your answers in the portal until the period closes.</p>
		</div>
	`, periodName, progress)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send submission receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Submission receipt sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendPeriodOpened(toEmail, periodName, closesAt string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s is now open", periodName))

	portalLink := fmt.Sprintf("%s/questionnaire", s.frontendURL)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s is open</h2>
			<p>The onboarding questionnaire and topic ranking are now available. Answers close on <b>%s</b>.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open the portal</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>Your answers are saved as you go, so you can stop and resume anytime.</p>
		</div>
	`, periodName, closesAt, portalLink, portalLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send period announcement to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Period announcement sent to %s\n", toEmail)
	return nil
}
