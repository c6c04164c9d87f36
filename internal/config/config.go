package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production | test
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`
	CORSOrigins    string `mapstructure:"CORS_ORIGINS"`

	// Database
	DBDriver    string `mapstructure:"DB_DRIVER"` // postgres | sqlite
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      int    `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`

	// Redis. Empty disables the catalog cache and the job queue.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	ACLFile            string `mapstructure:"ACL_FILE"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`

	// Documents
	PDFStoragePath     string `mapstructure:"PDF_STORAGE_PATH"`
	S3Bucket           string `mapstructure:"S3_BUCKET"`
	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`

	// Appointments
	ReminderIntervalMinutes int `mapstructure:"REMINDER_INTERVAL_MINUTES"`
}

// keys lists every variable viper must bind explicitly; AutomaticEnv alone
// does not make Unmarshal see variables that have no default.
var keys = []string{
	"PORT", "APP_ENV", "LOG_LEVEL", "WORKER_POOL_SIZE", "CORS_ORIGINS",
	"DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"REDIS_URL",
	"JWT_SECRET", "JWT_EXPIRATION_HOURS", "ACL_FILE",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "MAIL_FROM",
	"PDF_STORAGE_PATH", "S3_BUCKET", "AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
	"REMINDER_INTERVAL_MINUTES",
}

// Load reads configuration from the environment. An .env.<APP_ENV> file, or
// a plain .env, is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := godotenv.Load(".env." + env); err != nil {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	v.SetDefault("PORT", 3001)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WORKER_POOL_SIZE", 3)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "tunik")
	v.SetDefault("DB_NAME", "tunik")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_EXPIRATION_HOURS", 8)
	v.SetDefault("ACL_FILE", "data/acl.json")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("PDF_STORAGE_PATH", "/tmp/tunik/cotizaciones")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("REMINDER_INTERVAL_MINUTES", 60)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.WorkerPoolSize <= 0 {
		return fmt.Errorf("WORKER_POOL_SIZE must be positive, got %d", c.WorkerPoolSize)
	}
	if c.ReminderIntervalMinutes <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL_MINUTES must be positive, got %d", c.ReminderIntervalMinutes)
	}
	if c.JWTSecret == "" && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "tunik-dev-secret"
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a DSN assembled from the
// discrete DB_* credentials. For sqlite, DB_NAME is used as the file path.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBDriver == "sqlite" {
		return c.DBName + ".db"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// AllowedOrigins splits CORS_ORIGINS into a clean list.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsProduction() bool { return c.Env == "production" }
