package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Cache Cache
	Redis Redis

	Razorpay Razorpay `validate:"required"`
	Pricing  Pricing

	SMTP          SMTP
	Notifications Notifications
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Kafka struct {
	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`
	Topic   string   `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type Cache struct {
	Driver   string        `validate:"required,oneof=memory redis"`
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

type Redis struct {
	Addr     string `validate:"omitempty,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`
}

type Razorpay struct {
	KeyID     string        `validate:"required"`
	KeySecret string        `validate:"required"`
	BaseURL   string        `validate:"required,url"`
	Currency  string        `validate:"required,len=3,uppercase"`
	Timeout   time.Duration `validate:"gt=0"`
}

// Pricing amounts are whole currency units.
type Pricing struct {
	FreeShippingThreshold int64  `validate:"gte=0"`
	ShippingFee           int64  `validate:"gte=0"`
	TaxRate               string `validate:"required,numeric"`
}

type SMTP struct {
	Host       string `validate:"omitempty,hostname|ip"`
	Port       int    `validate:"omitempty,gt=0,lte=65535"`
	Username   string
	Password   string
	From       string `validate:"omitempty,email"`
	FromName   string
	AdminEmail string `validate:"omitempty,email"`
}

// Enabled reports whether outgoing mail is configured at all.
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type Notifications struct {
	QueueSize int           `validate:"gte=1"`
	Timeout   time.Duration `validate:"gt=0"`

	// Base URL of the storefront, used for dashboard links in operator emails.
	AppURL string `validate:"omitempty,url"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			GroupID: env("KAFKA_GROUP_ID", "storefront-checkout"),
			Topic:   env("KAFKA_TOPIC", "orders.confirmed"),
			Brokers: strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "storefront"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Cache: Cache{
			Driver:   env("CACHE_DRIVER", "memory"),
			Capacity: envInt("CACHE_CAPACITY", 500),
			TTL:      envDuration("CACHE_TTL", 10*time.Minute),
		},

		Redis: Redis{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},

		Razorpay: Razorpay{
			KeyID:     env("RAZORPAY_KEY_ID", ""),
			KeySecret: env("RAZORPAY_KEY_SECRET", ""),
			BaseURL:   env("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
			Currency:  env("RAZORPAY_CURRENCY", "INR"),
			Timeout:   envDuration("RAZORPAY_TIMEOUT", 10*time.Second),
		},

		Pricing: Pricing{
			FreeShippingThreshold: envInt64("FREE_SHIPPING_THRESHOLD", 500),
			ShippingFee:           envInt64("SHIPPING_FEE", 50),
			TaxRate:               env("TAX_RATE", "0.18"),
		},

		SMTP: SMTP{
			Host:       env("SMTP_HOST", ""),
			Port:       envInt("SMTP_PORT", 587),
			Username:   env("SMTP_USERNAME", ""),
			Password:   env("SMTP_PASSWORD", ""),
			From:       env("EMAIL_FROM", ""),
			FromName:   env("EMAIL_FROM_NAME", "Glow Skincare"),
			AdminEmail: env("ADMIN_NOTIFICATION_EMAIL", env("ADMIN_EMAIL", "")),
		},

		Notifications: Notifications{
			QueueSize: envInt("NOTIFICATION_QUEUE_SIZE", 256),
			Timeout:   envDuration("NOTIFICATION_TIMEOUT", 15*time.Second),
			AppURL:    env("APP_URL", "http://localhost:3000"),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Cache.Driver == "redis" {
		return validate.Var(c.Redis.Addr, "required,hostname_port")
	}
	return nil
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
