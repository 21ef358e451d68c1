package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env          string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   HTTPServerConfig `yaml:"http_server"`
	MongoDB      MongoDBConfig    `yaml:"mongo"`
	Redis        RedisConfig      `yaml:"redis"`
	NATS         NATSConfig       `yaml:"nats"`
	Logger       LoggerConfig     `yaml:"logger"`
	Tracing      TracingConfig    `yaml:"tracing"`
	JWT          JWTConfig        `yaml:"jwt"`
	SMTP         SMTPConfig       `yaml:"smtp"`
	Stripe       StripeConfig     `yaml:"stripe"`
	SSLCommerz   SSLCommerzConfig `yaml:"sslcommerz"`
	ListingCache CacheConfig      `yaml:"listing_cache"`
}

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env:"HTTP_TIMEOUT_GRACEFUL" env-default:"15s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User     string `yaml:"user" env:"MONGO_USER"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"bdrent"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type NATSConfig struct {
	URL string `yaml:"url" env:"NATS_URL" env-default:"nats://localhost:4222"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type TracingConfig struct {
	Enabled      bool   `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" env:"ACCESS_TOKEN_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env:"ACCESS_TOKEN_TTL" env-default:"240h"`
}

type SMTPConfig struct {
	Host        string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port        int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username    string `yaml:"username" env:"SMTP_USERNAME"`
	Password    string `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string `yaml:"sender_email" env:"SMTP_SENDER_EMAIL" env-default:"noreply@bdrent.local"`
}

type StripeConfig struct {
	SecretKey string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
}

type SSLCommerzConfig struct {
	StoreID       string `yaml:"store_id" env:"SSL_STORE_ID"`
	StorePassword string `yaml:"store_password" env:"SSL_STORE_PASSWORD"`
	Live          bool   `yaml:"live" env:"SSL_LIVE" env-default:"false"`
	SuccessURL    string `yaml:"success_url" env:"SSL_SUCCESS_URL" env-default:"http://localhost:3030/success"`
	FailURL       string `yaml:"fail_url" env:"SSL_FAIL_URL" env-default:"http://localhost:3030/fail"`
	CancelURL     string `yaml:"cancel_url" env:"SSL_CANCEL_URL" env-default:"http://localhost:3030/cancel"`
	IPNURL        string `yaml:"ipn_url" env:"SSL_IPN_URL" env-default:"http://localhost:3030/ipn"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"LISTING_CACHE_TTL" env-default:"1h"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		if _, ok := err.(*os.PathError); ok {
			log.Printf("Warning: Config file not found at %s, attempting to load from environment variables only.", path)
			if errEnv := cleanenv.ReadEnv(&cfg); errEnv != nil {
				return nil, errEnv
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
