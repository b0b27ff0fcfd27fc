// config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Telegram struct {
		Token           string
		AdminID         int64
		GroupID         int64
		GroupInviteLink string
	}
	DB struct {
		Host         string
		Port         string
		User         string
		Password     string
		DBName       string
		SSLMode      string
		MaxOpenConns int
		MaxIdleConns int
		ConnLifetime time.Duration
	}
	Stripe struct {
		SecretKey  string
		PublicKey  string
		WebhookKey string
		ProductID  string
		PriceID    string
	}
	GPT struct {
		APIKey      string
		Model       string
		GenTimeout  time.Duration
		ChatTimeout time.Duration
	}
	Payment struct {
		CardNumber string
	}
	Server struct {
		Port string
	}
	Timezone        string
	ShutdownTimeout time.Duration
}

// Load loads the configuration
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("$HOME/.fitness-bot")

	v.SetDefault("ShutdownTimeout", 10*time.Second)
	v.SetDefault("Timezone", "Europe/Kiev")
	v.SetDefault("GPT.Model", "gpt-4")
	v.SetDefault("GPT.GenTimeout", 60*time.Second)
	v.SetDefault("GPT.ChatTimeout", 45*time.Second)
	v.SetDefault("Server.Port", "8080")
	v.SetDefault("DB.MaxOpenConns", 20)
	v.SetDefault("DB.MaxIdleConns", 10)
	v.SetDefault("DB.ConnLifetime", 5*time.Minute)

	v.AutomaticEnv()

	err := v.ReadInConfig()

	// No config file: build the config from environment variables alone.
	if err != nil {
		cfg := &Config{}

		cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
		cfg.Telegram.AdminID, _ = strconv.ParseInt(os.Getenv("ADMIN_ID"), 10, 64)
		cfg.Telegram.GroupID, _ = strconv.ParseInt(os.Getenv("GROUP_ID"), 10, 64)
		cfg.Telegram.GroupInviteLink = os.Getenv("GROUP_INVITE_LINK")
		cfg.DB.Host = getEnvOr("DB_HOST", "localhost")
		cfg.DB.Port = getEnvOr("DB_PORT", "5432")
		cfg.DB.User = getEnvOr("DB_USER", "postgres")
		cfg.DB.Password = getEnvOr("DB_PASSWORD", "postgres")
		cfg.DB.DBName = getEnvOr("DB_NAME", "fitness_bot")
		cfg.DB.SSLMode = getEnvOr("DB_SSL_MODE", "disable")
		cfg.DB.MaxOpenConns = 20
		cfg.DB.MaxIdleConns = 10
		cfg.DB.ConnLifetime = 5 * time.Minute
		cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
		cfg.Stripe.PublicKey = os.Getenv("STRIPE_PUBLIC_KEY")
		cfg.Stripe.WebhookKey = os.Getenv("STRIPE_WEBHOOK_KEY")
		cfg.Stripe.ProductID = os.Getenv("STRIPE_PRODUCT_ID")
		cfg.Stripe.PriceID = os.Getenv("STRIPE_PRICE_ID")
		cfg.GPT.APIKey = os.Getenv("GPT_API_KEY")
		cfg.GPT.Model = getEnvOr("GPT_MODEL", "gpt-4")
		cfg.GPT.GenTimeout = 60 * time.Second
		cfg.GPT.ChatTimeout = 45 * time.Second
		cfg.Payment.CardNumber = os.Getenv("PAYMENT_CARD_NUMBER")
		cfg.Server.Port = getEnvOr("SERVER_PORT", "8080")
		cfg.Timezone = getEnvOr("BOT_TIMEZONE", "Europe/Kiev")
		cfg.ShutdownTimeout = 10 * time.Second

		return cfg, nil
	}

	// Process any ${ENV_VAR} syntax in the config values
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
			envValue := os.Getenv(envVar)
			if envValue != "" {
				v.Set(key, envValue)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Helper function to get environment variable with default value
func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
