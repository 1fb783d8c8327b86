// Package config содержит логику чтения конфигурации сервиса boostmarket.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const defaultRunAddress = "localhost:8080"

// Config содержит параметры конфигурации сервиса boostmarket.
type Config struct {
	RunAddress            string `env:"RUN_ADDRESS"`
	DatabaseURI           string `env:"DATABASE_URI"`
	PaymentGatewayAddress string `env:"PAYMENT_GATEWAY_ADDRESS"`
	RabbitURL             string `env:"RABBIT_URL"`
	JWTSecret             string `env:"JWT_SECRET"`
	// JWTSecretGenerated отмечает, что секрет не задан и сгенерирован на время жизни процесса.
	JWTSecretGenerated bool

	PaymentsExchange     string          `env:"PAYMENTS_EXCHANGE" envDefault:"payments.events"`
	PaymentsQueue        string          `env:"PAYMENTS_QUEUE" envDefault:"boostmarket.payments"`
	PaymentWebhookSecret string          `env:"PAYMENT_WEBHOOK_SECRET"`
	CommissionRate       decimal.Decimal `env:"COMMISSION_RATE" envDefault:"0.40"`
	MaxOrderPrice        decimal.Decimal `env:"MAX_ORDER_PRICE" envDefault:"10000.00"`
	ProofDir             string          `env:"PROOF_DIR" envDefault:"./proofs"`
	ProofMaxBytes        int64           `env:"PROOF_MAX_BYTES" envDefault:"5242880"`
	ReconcileInterval    time.Duration   `env:"RECONCILE_INTERVAL" envDefault:"30s"`
}

var decimalParser = map[reflect.Type]env.ParserFunc{
	reflect.TypeOf(decimal.Decimal{}): func(v string) (any, error) {
		return decimal.NewFromString(v)
	},
}

// Parse считывает конфигурацию из файла .env, переменных окружения и флагов командной строки.
// Значение из окружения имеет приоритет над флагом.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, env.Options{FuncMap: decimalParser}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envGatewayAddress := cfg.PaymentGatewayAddress
	envRabbitURL := cfg.RabbitURL
	envJWTSecret := cfg.JWTSecret

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI, in-memory storage when empty")
	flag.StringVar(&cfg.PaymentGatewayAddress, "r", "", "payment gateway address")
	flag.StringVar(&cfg.RabbitURL, "q", "", "RabbitMQ URL for payment events")
	flag.StringVar(&cfg.JWTSecret, "k", "", "JWT signing secret")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envGatewayAddress != "" {
		cfg.PaymentGatewayAddress = envGatewayAddress
	}
	if envRabbitURL != "" {
		cfg.RabbitURL = envRabbitURL
	}
	if envJWTSecret != "" {
		cfg.JWTSecret = envJWTSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		cfg.JWTSecretGenerated = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Validate проверяет границы числовых параметров.
func (c *Config) Validate() error {
	if !c.CommissionRate.IsPositive() || !c.CommissionRate.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("commission rate must be within (0, 1), got %s", c.CommissionRate)
	}
	if !c.MaxOrderPrice.IsPositive() {
		return fmt.Errorf("max order price must be positive, got %s", c.MaxOrderPrice)
	}
	if c.ProofMaxBytes <= 0 {
		return fmt.Errorf("proof max bytes must be positive, got %d", c.ProofMaxBytes)
	}
	if c.ReconcileInterval <= 0 {
		return fmt.Errorf("reconcile interval must be positive, got %s", c.ReconcileInterval)
	}
	return nil
}
