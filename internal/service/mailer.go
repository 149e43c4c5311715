package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP. All templates are plain
// HTML strings, the receiving clients render them.
type Mailer struct {
	host     string
	port     int
	sender   string
	password string
	appURL   string
	siteName string
}

func NewMailer() *Mailer {
	return &Mailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
		appURL:   viper.GetString("mail.app_url"),
		siteName: viper.GetString("mail.site_name"),
	}
}

func (m *Mailer) send(to, subject, html string) error {
	if to == m.sender {
		return errors.New("invalid email address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("[%s] %s", m.siteName, subject))
	msg.SetBody("text/html", html)

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	return d.DialAndSend(msg)
}

// SendVerificationMail delivers a registration confirmation link
// carrying the verification token.
func (m *Mailer) SendVerificationMail(to, token string) error {
	link := fmt.Sprintf("%s/register?token=%s", m.appURL, token)

	return m.send(to, "Confirm your account registration", verifyMailBody(m.siteName, link))
}

// SendPasswordResetMail delivers a password reset link carrying the
// reset token.
func (m *Mailer) SendPasswordResetMail(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.appURL, token)

	return m.send(to, "Password reset instructions", resetMailBody(m.siteName, link))
}

// SendLoginNotificationMail tells the account owner about a fresh
// login. Callers are expected to treat failures as best-effort.
func (m *Mailer) SendLoginNotificationMail(to, ipAddress, userAgent string) error {
	if ipAddress == "" {
		ipAddress = "unknown"
	}
	if userAgent == "" {
		userAgent = "unknown"
	}

	return m.send(to, "New login to your account",
		loginMailBody(m.siteName, time.Now().Format("2006-01-02 15:04:05 MST"), ipAddress, userAgent))
}

// SendCustomMail wraps an admin-composed subject and body. The body is
// caller-controlled HTML and is embedded as-is.
func (m *Mailer) SendCustomMail(to, subject, body string) error {
	return m.send(to, subject, customMailBody(m.siteName, subject, body))
}

// SendBroadcastMail delivers one admin-composed message to many members
// at once. Recipients go on Bcc so they never see each other's address.
func (m *Mailer) SendBroadcastMail(bcc []string, subject, body string) error {
	if len(bcc) == 0 {
		return errors.New("no recipients provided")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", m.sender)
	msg.SetHeader("Bcc", bcc...)
	msg.SetHeader("Subject", fmt.Sprintf("[%s] %s", m.siteName, subject))
	msg.SetBody("text/html", customMailBody(m.siteName, subject, body))

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	return d.DialAndSend(msg)
}
