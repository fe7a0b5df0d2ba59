// File: /config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	RedisURL    string

	// Payment processor configuration. Mode "demo" issues placeholder
	// intents locally; "live" talks to the processor's REST API.
	PaymentMode      string
	PaymentAPIBase   string
	PaymentSecretKey string
	PaymentReturnURL string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// Background job intervals
	LifecycleInterval time.Duration
	IntentTTL         time.Duration
}

func Load() *Config {
	// Missing .env is fine, env vars and defaults still apply
	_ = godotenv.Load()

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	lifecycleMinutes, _ := strconv.Atoi(getEnv("LIFECYCLE_INTERVAL_MINUTES", "10"))
	intentTTLMinutes, _ := strconv.Atoi(getEnv("PAYMENT_INTENT_TTL_MINUTES", "30"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/eventhub?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		PaymentMode:      getEnv("PAYMENT_MODE", "demo"),
		PaymentAPIBase:   getEnv("PAYMENT_API_BASE", "https://api.payment-processor.example"),
		PaymentSecretKey: getEnv("PAYMENT_SECRET_KEY", "sk_test_placeholder"),
		PaymentReturnURL: getEnv("PAYMENT_RETURN_URL", "http://localhost:3000/payment/return"),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@eventhub.com"),
		FromName:     getEnv("FROM_NAME", "EventHub"),

		LifecycleInterval: time.Duration(lifecycleMinutes) * time.Minute,
		IntentTTL:         time.Duration(intentTTLMinutes) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
