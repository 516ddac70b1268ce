package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	SentryDSN string        `env:"SENTRY_DSN"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Search    SearchConfig
	Auth      AuthConfig
	Workers   WorkerConfig
	Analytics AnalyticsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inquiry_desk"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

// KafkaConfig enables the mail queue publisher when Brokers is non-empty.
type KafkaConfig struct {
	Brokers   []string `env:"KAFKA_BROKERS"`
	MailTopic string   `env:"MAIL_TOPIC, default=crm.mail"`
}

// SearchConfig enables the Elasticsearch inquiry index when URL is set.
type SearchConfig struct {
	URL          string `env:"ELASTICSEARCH_URL"`
	InquiryIndex string `env:"INQUIRY_INDEX, default=inquiries"`
}

type AuthConfig struct {
	OTPTTL        time.Duration `env:"OTP_TTL,         default=10m"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL, default=15m"`
}

type WorkerConfig struct {
	NotifyWorkers    int           `env:"NOTIFY_WORKERS,    default=4"`
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL, default=5m"`
	ReminderLead     time.Duration `env:"REMINDER_LEAD,     default=24h"`
}

type AnalyticsConfig struct {
	CacheTTL time.Duration `env:"ANALYTICS_CACHE_TTL, default=60s"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
