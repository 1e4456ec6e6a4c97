package config

import (
	"log"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	AppBaseURL        string `mapstructure:"APP_BASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	Timezone          string `mapstructure:"TIMEZONE"`

	// Relational store (users, lawyers, bookings, reviews).
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Document store (consultations, knowledge entries, contact messages).
	MongoURL string `mapstructure:"MONGO_URL"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	// Auth.
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`
	QueueEnabled  bool   `mapstructure:"QUEUE_ENABLED"`

	// Booking economics.
	PlatformFeeRate float64 `mapstructure:"PLATFORM_FEE_RATE"`
	DefaultCurrency string  `mapstructure:"DEFAULT_CURRENCY"`

	// AI mentor collaborators.
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string `mapstructure:"GEMINI_MODEL"`
	VoiceAPIURL      string `mapstructure:"VOICE_API_URL"`
	VoiceAPIKey      string `mapstructure:"VOICE_API_KEY"`
	VoiceAgentID     string `mapstructure:"VOICE_AGENT_ID"`
	HTTPTimeoutSecs  int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	EmailAPIURL      string `mapstructure:"EMAIL_API_URL"`
	EmailAPIKey      string `mapstructure:"EMAIL_API_KEY"`
	EmailFrom        string `mapstructure:"EMAIL_FROM"`
	SupportEmail     string `mapstructure:"SUPPORT_EMAIL"`
	StripeKey        string `mapstructure:"STRIPE_KEY"`
	StorageType      string `mapstructure:"STORAGE_TYPE"`
	ImageFolder      string `mapstructure:"IMAGE_FOLDER"`
	CloudinaryName   string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinarySecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	S3Bucket         string `mapstructure:"S3_BUCKET"`
	S3Region         string `mapstructure:"S3_REGION"`
	AWSAccessKeyID   string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey     string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=lawease port=5432 sslmode=disable")
	viper.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "lawease")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("TOKEN_TTL_HOURS", 72)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("QUEUE_ENABLED", true)
	viper.SetDefault("PLATFORM_FEE_RATE", 0.15)
	viper.SetDefault("DEFAULT_CURRENCY", "INR")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	viper.SetDefault("VOICE_API_URL", "https://api.elevenlabs.io/v1/convai/conversations")
	viper.SetDefault("VOICE_API_KEY", "")
	viper.SetDefault("VOICE_AGENT_ID", "")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 30)
	viper.SetDefault("EMAIL_API_URL", "https://api.resend.com/emails")
	viper.SetDefault("EMAIL_API_KEY", "")
	viper.SetDefault("EMAIL_FROM", "LawEase <noreply@lawease.app>")
	viper.SetDefault("SUPPORT_EMAIL", "support@lawease.app")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STORAGE_TYPE", "cloudinary")
	viper.SetDefault("IMAGE_FOLDER", "lawease/profiles")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_REGION", "ap-south-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
}

func LoadConfig() {
	// Load .env when present.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if AppConfig.JWTSecret == "" {
		if IsProduction() {
			log.Fatal("JWT_SECRET must be set in production")
		}
		AppConfig.JWTSecret = "lawease-dev-secret"
	}
	if AppConfig.SessionSecret == "" {
		AppConfig.SessionSecret = AppConfig.JWTSecret
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the configured booking timezone, falling back to UTC.
func Location() *time.Location {
	if AppConfig.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using UTC", AppConfig.Timezone)
		return time.UTC
	}
	return loc
}

// HTTPTimeout is the timeout applied to outbound SaaS calls.
func HTTPTimeout() time.Duration {
	if AppConfig.HTTPTimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(AppConfig.HTTPTimeoutSecs) * time.Second
}
