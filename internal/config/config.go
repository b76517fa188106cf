package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	MongoDB   MongoDBConfig
	MinIO     MinIOConfig
	Payment   PaymentConfig
	Admin     AdminConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// PaymentConfig drives the checkout redirect and the verification gate.
type PaymentConfig struct {
	CheckoutURL    string
	VerifyDelay    time.Duration
	SnapshotPrefix string
	SnapshotTTL    time.Duration
}

type AdminConfig struct {
	Password string
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5002")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "willwizard")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("PAYMENT_CHECKOUT_URL", "https://donate.ukfreewill.co.uk/checkout")
	viper.SetDefault("PAYMENT_VERIFY_DELAY_MS", 2000)
	viper.SetDefault("PAYMENT_SNAPSHOT_PREFIX", "pending_will:")
	viper.SetDefault("PAYMENT_SNAPSHOT_TTL_HOURS", 24)
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 60)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("MINIO_BUCKET", "will-archive")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
		Payment: PaymentConfig{
			CheckoutURL:    viper.GetString("PAYMENT_CHECKOUT_URL"),
			VerifyDelay:    time.Duration(viper.GetInt("PAYMENT_VERIFY_DELAY_MS")) * time.Millisecond,
			SnapshotPrefix: viper.GetString("PAYMENT_SNAPSHOT_PREFIX"),
			SnapshotTTL:    time.Duration(viper.GetInt("PAYMENT_SNAPSHOT_TTL_HOURS")) * time.Hour,
		},
		Admin: AdminConfig{
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:         viper.GetString("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; set a secure value in production")
	}
	if cfg.Admin.Password == "" {
		log.Println("WARNING: ADMIN_PASSWORD is not set; the admin dashboard will reject all logins")
	}

	return cfg, nil
}
