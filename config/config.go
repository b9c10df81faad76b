package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Checkout session TTL in minutes.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Payment processor.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Fees, in cents.
	BookingFeeCents   int64 `mapstructure:"BOOKING_FEE_CENTS"`
	InstantVisitCents int64 `mapstructure:"INSTANT_VISIT_CENTS"`
	RefillVisitCents  int64 `mapstructure:"REFILL_VISIT_CENTS"`
	VideoVisitCents   int64 `mapstructure:"VIDEO_VISIT_CENTS"`
	PhoneVisitCents   int64 `mapstructure:"PHONE_VISIT_CENTS"`

	// Pharmacy records API for the live medication lookup.
	PharmacyAPIBaseURL string `mapstructure:"PHARMACY_API_BASE_URL"`
	PharmacyAPIKey     string `mapstructure:"PHARMACY_API_KEY"`

	// Extra regulated medication names, beyond the built-in list.
	RegulatedMedications []string `mapstructure:"REGULATED_MEDICATIONS"`

	// Visit reminder emails.
	SendgridAPIKey    string `mapstructure:"SENDGRID_API_KEY"`
	ReminderFromEmail string `mapstructure:"REMINDER_FROM_EMAIL"`
	ReminderFromName  string `mapstructure:"REMINDER_FROM_NAME"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 1440)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("BOOKING_FEE_CENTS", 500)
	viper.SetDefault("INSTANT_VISIT_CENTS", 3900)
	viper.SetDefault("REFILL_VISIT_CENTS", 2900)
	viper.SetDefault("VIDEO_VISIT_CENTS", 5900)
	viper.SetDefault("PHONE_VISIT_CENTS", 4900)
	viper.SetDefault("PHARMACY_API_BASE_URL", "")
	viper.SetDefault("REMINDER_FROM_EMAIL", "care@careflow.health")
	viper.SetDefault("REMINDER_FROM_NAME", "Careflow")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
