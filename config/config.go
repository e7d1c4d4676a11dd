package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	// Mercado Pago checkout credentials
	MercadoPagoToken  string
	MercadoPagoURL    string
	CheckoutTimeout   int // seconds for the provider handshake
	PendingPaymentTTL int // hours before an orphan PENDING payment is failed

	FrontendURL string

	// Front-end cache revalidation endpoint
	RevalidateURL    string
	RevalidateSecret string

	EmailSender string
	Password    string // SMTP Password
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		MercadoPagoToken:  getEnv("MERCADO_PAGO_ACCESS_TOKEN", ""),
		MercadoPagoURL:    getEnv("MERCADO_PAGO_API_URL", "https://api.mercadopago.com"),
		CheckoutTimeout:   getEnvInt("CHECKOUT_TIMEOUT_SECONDS", 10),
		PendingPaymentTTL: getEnvInt("PENDING_PAYMENT_TTL_HOURS", 24),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3001"),

		RevalidateURL:    getEnv("REVALIDATE_API_URL", ""),
		RevalidateSecret: getEnv("REVALIDATE_SECRET", ""),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.MercadoPagoToken == "" {
		log.Println("Warning: MERCADO_PAGO_ACCESS_TOKEN is not set. Checkout creation will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
