package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rashmods/helpdesk/internal/domain"
)

// Config aggregates runtime configuration for the bot.
type Config struct {
	App      AppConfig
	Ticket   TicketConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Notify   NotifyConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// TicketConfig holds the ticket lifecycle surface: category list, the role
// responsible for each category, the transcript log destination, the entry
// channel, and the three timing constants.
type TicketConfig struct {
	Categories     []string
	CategoryRoles  map[string]domain.RoleID
	LogDestination string
	EntryChannelID string
	IdleTimeoutSec int
	EscalationSec  int
	RetentionSec   int
}

// PostgresConfig holds the optional transcript-archive DB connection values.
// An empty DSN disables the Postgres sink.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds the optional transcript-archive Redis connection values.
// An empty Addr disables the Redis sink.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines the moderator role gate parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
}

// NotifyConfig holds the stub webhook endpoint for lifecycle events.
type NotifyConfig struct {
	WebhookURL string
}

const defaultCategories = "Mods Related,Other Query,Bugs,Suggestions,Feedback"

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	categories := splitList(getEnv("TICKET_CATEGORIES", defaultCategories))
	if len(categories) == 0 {
		return nil, fmt.Errorf("TICKET_CATEGORIES must list at least one category")
	}
	roles, err := parseCategoryRoles(categories, os.Getenv("TICKET_CATEGORY_ROLES"), os.Getenv("TICKET_DEFAULT_ROLE_ID"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "helpdesk-bot"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Ticket: TicketConfig{
			Categories:     categories,
			CategoryRoles:  roles,
			LogDestination: getEnv("TICKET_LOG_DESTINATION", "ticket-logs"),
			EntryChannelID: os.Getenv("TICKET_ENTRY_CHANNEL_ID"),
			IdleTimeoutSec: getEnvAsInt("TICKET_IDLE_TIMEOUT_SECONDS", 600),
			EscalationSec:  getEnvAsInt("TICKET_ESCALATION_SECONDS", 900),
			RetentionSec:   getEnvAsInt("TICKET_RETENTION_SECONDS", 300),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
		},
		Notify: NotifyConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// IdleTimeout is the delay from creation after which an untouched ticket closes.
func (t TicketConfig) IdleTimeout() time.Duration {
	return time.Duration(t.IdleTimeoutSec) * time.Second
}

// EscalationDelay is the delay from creation after which an open ticket escalates.
func (t TicketConfig) EscalationDelay() time.Duration {
	return time.Duration(t.EscalationSec) * time.Second
}

// RetentionDelay is the delay from feedback after which the channel is deleted.
func (t TicketConfig) RetentionDelay() time.Duration {
	return time.Duration(t.RetentionSec) * time.Second
}

// HasCategory reports whether the category is in the configured set.
func (t TicketConfig) HasCategory(category string) bool {
	for _, c := range t.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// RoleFor returns the role responsible for the category.
func (t TicketConfig) RoleFor(category string) (domain.RoleID, bool) {
	role, ok := t.CategoryRoles[category]
	return role, ok
}

// parseCategoryRoles reads "Category=roleID" pairs separated by commas. A
// category without an explicit pair falls back to the default role ID.
func parseCategoryRoles(categories []string, pairs, fallback string) (map[string]domain.RoleID, error) {
	roles := make(map[string]domain.RoleID, len(categories))
	for _, cat := range categories {
		if fallback != "" {
			roles[cat] = domain.RoleID(fallback)
		}
	}
	if strings.TrimSpace(pairs) == "" {
		return roles, nil
	}
	for _, pair := range strings.Split(pairs, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid TICKET_CATEGORY_ROLES entry %q", pair)
		}
		cat := strings.TrimSpace(parts[0])
		role := strings.TrimSpace(parts[1])
		if cat == "" || role == "" {
			return nil, fmt.Errorf("invalid TICKET_CATEGORY_ROLES entry %q", pair)
		}
		roles[cat] = domain.RoleID(role)
	}
	return roles, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
