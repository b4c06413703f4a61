package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Bot
	Telegram       TelegramConfig
	Database       DatabaseConfig
	Conversation   ConversationConfig
	RateLimit      RateLimitConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string `validate:"oneof=development production"`
}

type HTTPServerConfig struct {
	Port int    `validate:"min=1,max=65535"`
	Mode string `validate:"oneof=debug release test"`
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string `validate:"oneof=json console"`
	ColorEnabled bool
}

// Telegram update sources.
const (
	ModeWebhook = "webhook"
	ModePolling = "polling"
)

type TelegramConfig struct {
	BotToken    string
	Mode        string `validate:"oneof=webhook polling"`
	WebhookURL  string
	NgrokAPIURL string // used to discover WebhookURL when it is empty
	// Must stay below the bot HTTP client timeout.
	PollTimeout time.Duration `validate:"min=0,max=60s"`
}

type DatabaseConfig struct {
	Driver          string `validate:"oneof=sqlite3 postgres"`
	DSN             string `validate:"required"`
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type ConversationConfig struct {
	TTL           time.Duration
	MaxSessions   int
	NewTaskPolicy string `validate:"oneof=restart reject"`
}

type RateLimitConfig struct {
	PerMin int `validate:"min=0"`
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
	Timezone        string
	ReminderMinutes int `validate:"min=0"`
}

// Load loads configuration using Viper.
// A .env file is applied to the environment first when present.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.Mode = v.GetString("telegram.mode")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.NgrokAPIURL = v.GetString("telegram.ngrok_api_url")
	cfg.Telegram.PollTimeout = v.GetDuration("telegram.poll_timeout")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Database
	cfg.Database.Driver = v.GetString("database.driver")
	cfg.Database.DSN = v.GetString("database.dsn")
	cfg.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	cfg.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")
	cfg.Database.ConnMaxLifetime = v.GetDuration("database.conn_max_lifetime")
	cfg.Database.AutoMigrate = v.GetBool("database.auto_migrate")
	if dbURL := v.GetString("database_url"); dbURL != "" {
		cfg.Database.DSN = dbURL
	}

	// Conversation
	cfg.Conversation.TTL = v.GetDuration("conversation.ttl")
	cfg.Conversation.MaxSessions = v.GetInt("conversation.max_sessions")
	cfg.Conversation.NewTaskPolicy = v.GetString("conversation.new_task_policy")

	cfg.RateLimit.PerMin = v.GetInt("rate_limit.per_min")

	// Google Calendar (optional)
	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = v.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.Timezone = v.GetString("google_calendar.timezone")
	cfg.GoogleCalendar.ReminderMinutes = v.GetInt("google_calendar.reminder_minutes")
	if googleCreds := v.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.GoogleCalendar.Timezone != "" {
		if _, err := time.LoadLocation(cfg.GoogleCalendar.Timezone); err != nil {
			return nil, fmt.Errorf("invalid config: google_calendar.timezone: %w", err)
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("telegram.mode", ModeWebhook)
	v.SetDefault("telegram.poll_timeout", "30s")

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "data/tasks.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("conversation.ttl", "30m")
	v.SetDefault("conversation.max_sessions", 10000)
	v.SetDefault("conversation.new_task_policy", "restart")

	v.SetDefault("rate_limit.per_min", 60)

	v.SetDefault("google_calendar.token_path", "token.json")
	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("google_calendar.timezone", "UTC")
	v.SetDefault("google_calendar.reminder_minutes", 30)
}
