package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	MongoTransactions bool   `mapstructure:"MONGO_TRANSACTIONS"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	SlotCacheTTL  time.Duration `mapstructure:"SLOT_CACHE_TTL"`

	// Secrets. JWTSecret verifies session tokens issued by the auth service,
	// QRSecret keys appointment credentials.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	QRSecret  string `mapstructure:"QR_SECRET"`

	// Appointment credentials and reminders.
	Timezone        string        `mapstructure:"APP_TIMEZONE"`
	CredentialGrace time.Duration `mapstructure:"CREDENTIAL_GRACE"`
	ReminderLead    time.Duration `mapstructure:"REMINDER_LEAD"`

	// Path to a Firebase service account key. Empty disables push delivery.
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`
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

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if AppConfig.QRSecret == "" {
		log.Println("QR_SECRET not set; falling back to JWT_SECRET for credential signing")
		AppConfig.QRSecret = AppConfig.JWTSecret
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "govconnect")
	viper.SetDefault("MONGO_TRANSACTIONS", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("SLOT_CACHE_TTL", "30s")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("QR_SECRET", "")
	viper.SetDefault("APP_TIMEZONE", "Asia/Colombo")
	viper.SetDefault("CREDENTIAL_GRACE", "1h")
	viper.SetDefault("REMINDER_LEAD", "24h")
	viper.SetDefault("FIREBASE_CREDENTIALS", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves the configured timezone, falling back to UTC.
func Location() *time.Location {
	if AppConfig.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("invalid APP_TIMEZONE %q, using UTC: %v", AppConfig.Timezone, err)
		return time.UTC
	}
	return loc
}
