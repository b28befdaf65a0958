package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppHost   string
	HTTPPort  string
	GRPCPort  string
	AppEnv    string
	LogLevel  string
	LogFormat string

	// JWTSecret: ключ HS256 для проверки bearer-токенов (токены выпускает auth-service).
	JWTSecret   string
	CORSOrigins []string

	KafkaBrokers     []string
	KafkaTopicEvents string

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// FirebaseCredentialsFile: если пуст, push-уведомления отключены.
	FirebaseCredentialsFile string

	MercadoPagoAccessToken string
	PaymentGatewayMock     bool

	Expiry struct {
		Interval  time.Duration
		Timeout   time.Duration
		BatchSize int
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:                 getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort:                firstEnv("APP_PORT", "HTTP_PORT", "8098"),
		GRPCPort:                firstEnv("GRPC_PORT", "METRICS_PORT", "9098"),
		AppEnv:                  getEnv("APP_ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "text"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		CORSOrigins:             splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		KafkaBrokers:            splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopicEvents:        getEnv("KAFKA_TOPIC_EVENTS", "marketplace.events"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		MercadoPagoAccessToken:  getEnv("MERCADOPAGO_ACCESS_TOKEN", ""),
	}
	var err error
	if cfg.PaymentGatewayMock, err = getBool("PAYMENT_GATEWAY_MOCK", false); err != nil {
		return nil, err
	}

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if cfg.Expiry.Interval, err = getDuration("ESTIMATE_EXPIRY_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.Expiry.Timeout, err = getDuration("ESTIMATE_EXPIRY_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Expiry.BatchSize, err = getInt("ESTIMATE_EXPIRY_BATCH", 100); err != nil {
		return nil, err
	}

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.Database = getEnv("DB_DATABASE", "marketplace_service")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DB.Host == "" || c.DB.Database == "" {
		return errors.New("config: DB_HOST and DB_DATABASE are required")
	}
	if c.AppEnv == "production" && c.DB.Password == "" {
		return errors.New("config: in production DB_PASSWORD is required")
	}
	if c.AppEnv == "production" && c.JWTSecret == "" {
		return errors.New("config: in production JWT_SECRET is required")
	}
	if c.Expiry.Interval <= 0 || c.Expiry.Timeout <= 0 {
		return errors.New("config: ESTIMATE_EXPIRY_INTERVAL and ESTIMATE_EXPIRY_TIMEOUT must be positive")
	}
	if c.Expiry.BatchSize <= 0 {
		return errors.New("config: ESTIMATE_EXPIRY_BATCH must be positive")
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) DatabaseURL() string {
	pass := url.QueryEscape(c.DB.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, pass, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func (c *Config) GRPCAddr() string {
	return c.AppHost + ":" + c.GRPCPort
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

// splitList разбивает "a,b , c" на ["a","b","c"].
func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
