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
	SendOTPEmail(toEmail, code string) error
}

// SMTPConfig holds configuration for the SMTP relay
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// SMTPMailer implements Mailer over net/smtp
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: logger,
	}
}

// SendOTPEmail sends the one-time verification code to a candidate address.
func (m *SMTPMailer) SendOTPEmail(toEmail, code string) error {
	// Without relay credentials, log the code instead of sending (development)
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("toEmail", toEmail).
			Str("code", code).
			Msg("SMTP credentials not configured - OTP email not sent. Use the code above for testing.")
		return nil
	}

	subject := "Your EduShare Verification Code"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Verify your email</h2>
				<p>Your EduShare verification code is:</p>

				<div style="text-align: center; margin: 30px 0;">
					<span style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">%s</span>
				</div>

				<p>Enter this code on the registration page to continue. The code stays
				valid until you request a new one or finish registration.</p>

				<p>If you did not try to register for EduShare, please ignore this email.</p>

				<p>Best regards,<br>The EduShare Team</p>
			</div>
		</body>
		</html>
	`, code)

	return m.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email through the configured relay
func (m *SMTPMailer) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		m.config.Username,
		m.config.Password,
		m.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", m.config.FromName, m.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := m.config.Host + ":" + strconv.Itoa(m.config.Port)

	if m.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: m.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			m.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, m.config.Host)
		if err != nil {
			m.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			m.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(m.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		m.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		m.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// GenerateOTP returns a 6-digit code sampled uniformly from 100000-999999.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("secure random generation failed: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
