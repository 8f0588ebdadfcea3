// Package service contains background and best-effort collaborators of the
// request handlers
package service

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers credential-flow links. Delivery is best effort by
// contract: callers must never fail their own operation because a mail
// could not be sent.
type Mailer interface {
	SendVerifyMail(to, verifyURL string) error
	SendResetMail(to, resetURL string) error
}

// Dispatch runs send in a detached goroutine and logs the outcome. The
// caller's response has usually been promised by the time this runs, so
// errors stop here.
func Dispatch(send func() error, kind, to string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("Mail dispatch panicked", zap.String("kind", kind), zap.Any("panic", r))
			}
		}()

		if err := send(); err != nil {
			zap.L().Error("Failed to send mail", zap.String("kind", kind), zap.String("to", to), zap.Error(err))
			return
		}

		zap.L().Debug("Mail sent", zap.String("kind", kind), zap.String("to", to))
	}()
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Sender:   viper.GetString("mail.sender"),
		Password: viper.GetString("mail.password"),
	}
}

func (m *SMTPMailer) SendVerifyMail(to, verifyURL string) error {
	body := fmt.Sprintf(
		"Click <a href='%s'>here</a> to verify your account.<br><br>This link will expire in 24 hours.",
		verifyURL)

	return m.send(to, "Verify your email", body)
}

func (m *SMTPMailer) SendResetMail(to, resetURL string) error {
	body := fmt.Sprintf(
		"We received a request to reset your account password. Click <a href='%s'>here</a> to choose a new one.<br><br>"+
			"This link will expire in 15 minutes. If you didn't request this reset you can safely ignore this email.",
		resetURL)

	return m.send(to, "Reset your password", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.Sender, m.Password)

	return d.DialAndSend(msg)
}

// NopMailer is used when mail is disabled in the config. Links end up in
// the debug log so local setups can still complete the flows.
type NopMailer struct{}

func (NopMailer) SendVerifyMail(to, verifyURL string) error {
	zap.L().Debug("Mail disabled, skipping verification mail", zap.String("url", verifyURL))
	return nil
}

func (NopMailer) SendResetMail(to, resetURL string) error {
	zap.L().Debug("Mail disabled, skipping reset mail", zap.String("url", resetURL))
	return nil
}
