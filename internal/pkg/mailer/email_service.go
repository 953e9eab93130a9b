// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"funeral-docs-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPasswordReset(toEmail, fullName, token string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderName, clientURL string, log logger.ILogger) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
		clientURL:   strings.TrimRight(clientURL, "/"),
		logger:      log,
	}
}

// ResetLink builds the client URL the reset email points at.
func ResetLink(clientURL, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(clientURL, "/"), url.QueryEscape(token))
}

func (s *emailService) SendPasswordReset(toEmail, fullName, token string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Reset Your Password")

	link := ResetLink(s.clientURL, token)
	greeting := "Hello,"
	if fullName != "" {
		greeting = fmt.Sprintf("Hello %s,", html.EscapeString(fullName))
	}

	body := fmt.Sprintf(`
		<div style="font-family: Georgia, serif; padding: 20px; color: #333;">
			<p>%s</p>
			<p>We received a request to reset the password for your %s account.</p>
			<a href="%s" style="background-color: #4a5568; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px; display: inline-block;">Reset Password</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>This link will expire in 1 hour. If you didn't request this, you can ignore this email.</p>
		</div>
	`, greeting, html.EscapeString(s.senderName), link, link)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send password reset", map[string]interface{}{"to": toEmail, "error": err.Error()})
		return err
	}

	s.logger.Info("MAILER", "Password reset sent", map[string]interface{}{"to": toEmail})
	return nil
}

// logOnlyService stands in when SMTP is not configured. It logs the link
// so local setups can still reset passwords.
type logOnlyService struct {
	clientURL string
	logger    logger.ILogger
}

func NewLogOnlyEmailService(clientURL string, log logger.ILogger) IEmailService {
	return &logOnlyService{clientURL: clientURL, logger: log}
}

func (s *logOnlyService) SendPasswordReset(toEmail, _, token string) error {
	s.logger.Warn("MAILER", "SMTP not configured, password reset not emailed", map[string]interface{}{
		"to":   toEmail,
		"link": ResetLink(s.clientURL, token),
	})
	return nil
}
