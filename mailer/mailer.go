package mailer

import (
	"fmt"
	"net/smtp"
	"os"
)

// Config is read from the environment once at startup rather than per send,
// so tests can substitute a fake sender without touching the environment.
type Config struct {
	Host   string
	Port   string
	Sender string
	Pass   string
	AppURL string
}

func ConfigFromEnv() Config {
	cfg := Config{
		Host:   os.Getenv("SMTP_HOST"),
		Port:   os.Getenv("SMTP_PORT"),
		Sender: os.Getenv("SMTP_SENDER"),
		Pass:   os.Getenv("SMTP_PASSWORD"),
		AppURL: os.Getenv("APP_BASE_URL"),
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:8080"
	}
	return cfg
}

// Sender delivers platform mail. The SMTP implementation is the default;
// handlers depend on the interface so tests can record instead of send.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	Cfg Config
}

func (s SMTPSender) Send(to, subject, body string) error {
	msg := []byte("Subject: " + subject + "\r\n\r\n" + body)
	auth := smtp.PlainAuth("", s.Cfg.Sender, s.Cfg.Pass, s.Cfg.Host)
	return smtp.SendMail(s.Cfg.Host+":"+s.Cfg.Port, auth, s.Cfg.Sender, []string{to}, msg)
}

// InviteBody builds the roster invitation mail body with its tokenized URL.
func InviteBody(appURL, artistName, token string) string {
	return fmt.Sprintf(
		"%s has invited you to join their roster.\n\nAccept or decline here: %s/roster/invite?token=%s\n\nThis link expires in 7 days.",
		artistName, appURL, token,
	)
}

// VerificationBody builds the sign-up email-verification mail body.
func VerificationBody(appURL, token string) string {
	return fmt.Sprintf(
		"Welcome! Verify your email to continue signing up: %s/signup/verify?token=%s",
		appURL, token,
	)
}
