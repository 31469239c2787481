// Package email provides email operations for the application
package email

import (
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"math/big"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Mailer defines the interface for email operations
type Mailer interface {
	SendPasswordResetEmail(toEmail, toName, tempPassword string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: logger}
}

// SendPasswordResetEmail delivers a temporary password. When SMTP
// credentials are not configured the message is logged instead so local
// development works without a mail server.
func (m *SMTPMailer) SendPasswordResetEmail(toEmail, toName, tempPassword string) error {
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("toEmail", toEmail).
			Msg("SMTP credentials not configured - password reset email not sent")
		return nil
	}

	subject := "Password Reset - Placement Portal"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset</h2>
				<p>Hello %s,</p>
				<p>A password reset was requested for your account. Your temporary password is:</p>
				<p style="text-align: center; font-size: 20px;"><strong>%s</strong></p>
				<p>Log in with it and change your password right away.</p>
				<p>If you did not request this reset, contact the placement office.</p>
			</div>
		</body>
		</html>
	`, toName, tempPassword)

	return m.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email via the configured SMTP server.
func (m *SMTPMailer) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", m.config.FromName, m.config.FromEmail)
	headers := map[string]string{
		"From":         from,
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	addr := m.config.Host + ":" + strconv.Itoa(m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if !m.config.UseTLS {
		return smtp.SendMail(addr, auth, m.config.FromEmail, []string{toEmail}, []byte(message))
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.config.Host})
	if err != nil {
		return fmt.Errorf("dialing smtp server: %w", err)
	}
	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.config.FromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(toEmail); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

const tempPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTempPassword returns a random password of the given length,
// regenerating until it contains at least one letter and one digit so the
// login validator accepts it. Every position stays uniformly random.
func GenerateTempPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	buf := make([]byte, length)
	for {
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordAlphabet))))
			if err != nil {
				return "", fmt.Errorf("generating random password: %w", err)
			}
			buf[i] = tempPasswordAlphabet[n.Int64()]
		}
		if hasLetterAndDigit(buf) {
			return string(buf), nil
		}
	}
}

func hasLetterAndDigit(buf []byte) bool {
	hasLetter, hasDigit := false, false
	for _, b := range buf {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
			hasLetter = true
		case b >= '0' && b <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
