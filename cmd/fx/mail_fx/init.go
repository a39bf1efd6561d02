package mail_fx

import (
	"log"
	"os"
	"strconv"

	"go.uber.org/fx"
	"pottypal/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.IMailService {

	port, err := strconv.Atoi(getEnvWithDefault("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}

	cfg := services.SMTPConfig{
		Host:       getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		Port:       port, // 587 for STARTTLS; use 465 with UseSSL=true for SMTPS
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"), // use app password if 2FA is enabled
		From:       getEnvWithDefault("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
		FromName:   "PottyPal",
		UseSSL:     port == 465,
		RequireTLS: true,

		AppName:    "PottyPal",
		AppBaseURL: getEnvWithDefault("APP_BASE_URL", "https://pottypal.app"),
	}

	mailService, err := services.NewSMTPMailService(cfg)
	if err != nil {
		log.Printf("Failed to initialize SMTP mail service: %v", err)
	}

	return mailService
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
