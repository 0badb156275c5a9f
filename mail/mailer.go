package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// Config carries the SMTP settings for outgoing notifications.
type Config struct {
	Host     string // SMTP_HOST, e.g. smtp.gmail.com
	Port     string // SMTP_PORT, e.g. 587
	Username string // SMTP_USERNAME
	Password string // SMTP_PASSWORD, app password or smtp password
	From     string // SMTP_FROM, falls back to Username when empty
	AppName  string // APP_NAME, shown as the sender name
}

// LoadConfig reads SMTP settings from the environment.
func LoadConfig() Config {
	get := func(k, d string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return d
	}
	return Config{
		Host:     get("SMTP_HOST", ""),
		Port:     get("SMTP_PORT", "587"),
		Username: get("SMTP_USERNAME", ""),
		Password: get("SMTP_PASSWORD", ""),
		From:     get("SMTP_FROM", ""),
		AppName:  get("APP_NAME", "Regional Library"),
	}
}

// Mailer sends the registration notice for a freshly created account.
// The password is the plaintext handed to the new user once.
type Mailer interface {
	SendRegistration(toEmail, fullName, username, password string) error
}

type SMTPMailer struct{ cfg Config }

func NewSMTPMailer(cfg Config) *SMTPMailer { return &SMTPMailer{cfg: cfg} }

func (m *SMTPMailer) SendRegistration(toEmail, fullName, username, password string) error {
	// No SMTP configured: dev mode, log the credentials instead.
	if m.cfg.Host == "" || (m.cfg.Username == "" && m.cfg.From == "") {
		log.Printf("[DEV] registration mail for %s: username=%s password=%s", toEmail, username, password)
		return nil
	}

	fromAddr := m.cfg.From
	if fromAddr == "" {
		fromAddr = m.cfg.Username
	}

	subject := fmt.Sprintf("Welcome to %s", m.cfg.AppName)
	html := registrationBody(m.cfg.AppName, fullName, username, password)
	msg := buildMIME(m.cfg.AppName, fromAddr, toEmail, subject, html)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	return smtp.SendMail(addr, auth, fromAddr, []string{toEmail}, []byte(msg))
}

func registrationBody(appName, fullName, username, password string) string {
	return fmt.Sprintf(`
<div style="font-family:Arial,sans-serif; font-size:14px; color:#222">
  <p>Dear <b>%s</b>,</p>
  <p>We are pleased to inform you that you have been registered with <b>%s</b>.</p>
  <p>
    <strong>Username:</strong> %s<br/>
    <strong>Password:</strong> %s
  </p>
  <p>You can now log in to the library portal to browse books, borrow titles and manage your account.</p>
  <p>If you have any questions or need assistance, feel free to contact our support team.</p>
  <hr/>
  <p style="color:#666">Welcome aboard, and happy reading!<br/>%s Team</p>
</div>
`, fullName, appName, username, password, appName)
}

func buildMIME(fromName, fromAddr, to, subject, html string) string {
	headers := []string{
		fmt.Sprintf("From: %s <%s>", fromName, fromAddr),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + html
}
