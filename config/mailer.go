package config

import (
	"os"
	"strconv"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// SMTP settings come from env:
// - SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS
// - APP_BASE_URL (public-link base, e.g. https://invoices.example.com)
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	BaseURL  string
}

func GetMailConfig() MailConfig {
	port, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SMTP_PORT")))
	if err != nil || port == 0 {
		port = 587
	}
	baseURL := strings.TrimRight(os.Getenv("APP_BASE_URL"), "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return MailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     os.Getenv("SMTP_USER"),
		BaseURL:  baseURL,
	}
}

func NewMailDialer(cfg MailConfig) *gomail.Dialer {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
}
