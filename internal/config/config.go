package config

import (
	"fmt"
	"time"

	cleanenvport "github.com/wb-go/wbf/config/cleanenv-port"
	"github.com/wb-go/wbf/logger"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"    validate:"required"`
	Logger    LoggerConfig    `yaml:"logger"    validate:"required"`
	Gin       GinConfig       `yaml:"gin"       validate:"required"`
	Provider  ProviderConfig  `yaml:"provider"  validate:"required"`
	Fallback  FallbackConfig  `yaml:"fallback"`
	Cache     CacheConfig     `yaml:"cache"     validate:"required"`
	CORS      CORSConfig      `yaml:"cors"`
	Postgres  PostgresConfig  `yaml:"postgres"  validate:"required"`
	Scheduler SchedulerConfig `yaml:"scheduler" validate:"required"`
	Telegram  TelegramConfig  `yaml:"telegram"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"          env:"SERVER_ADDR"          env-default:":8080" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"10s"   validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"   validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"SERVER_IDLE_TIMEOUT"  env-default:"60s"   validate:"gt=0"`
}

// LogLevel maps the configured level name to a wbf logger level.
func (c LoggerConfig) LogLevel() logger.Level {
	switch c.Level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

// LogEngine maps the configured engine name to a wbf logger engine.
func (c LoggerConfig) LogEngine() logger.Engine {
	return logger.Engine(c.Engine)
}

type LoggerConfig struct {
	Engine string `yaml:"engine" env:"LOG_ENGINE" env-default:"slog"  validate:"required,oneof=slog zap zerolog logrus"`
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"  validate:"required,oneof=debug info warn error"`
}

type GinConfig struct {
	Mode string `yaml:"mode" env:"GIN_MODE" env-default:"debug" validate:"required,oneof=debug release test"`
}

// ProviderConfig describes the primary event search API. An empty APIKey is
// not a startup error: searches then fail with a configuration error and go
// straight to the fallback.
type ProviderConfig struct {
	Name        string        `yaml:"name"         env:"PROVIDER_NAME"         env-default:"rapidapi"                              validate:"required"`
	BaseURL     string        `yaml:"base_url"     env:"PROVIDER_BASE_URL"     env-default:"https://real-time-events-search.p.rapidapi.com" validate:"required,url"`
	SearchPath  string        `yaml:"search_path"  env:"PROVIDER_SEARCH_PATH"  env-default:"/search-events"`
	DetailsPath string        `yaml:"details_path" env:"PROVIDER_DETAILS_PATH" env-default:"/event-details"`
	APIKey      string        `yaml:"api_key"      env:"PROVIDER_API_KEY"      env-default:""`
	Host        string        `yaml:"host"         env:"PROVIDER_HOST"         env-default:"real-time-events-search.p.rapidapi.com"`
	Sort        string        `yaml:"sort"         env:"PROVIDER_SORT"         env-default:""`
	Timeout     time.Duration `yaml:"timeout"      env:"PROVIDER_TIMEOUT"      env-default:"15s" validate:"gt=0"`
	OverFetch   int           `yaml:"over_fetch"   env:"PROVIDER_OVER_FETCH"   env-default:"2"   validate:"min=1"`
	MaxFetch    int           `yaml:"max_fetch"    env:"PROVIDER_MAX_FETCH"    env-default:"500" validate:"min=1"`
	Attempts    int           `yaml:"attempts"     env:"PROVIDER_RETRY_ATTEMPTS" env-default:"3"  validate:"min=1,max=10"`
	RetryDelay  time.Duration `yaml:"retry_delay"  env:"PROVIDER_RETRY_DELAY"  env-default:"1s"  validate:"gt=0"`
	Backoff     float64       `yaml:"backoff"      env:"PROVIDER_RETRY_BACKOFF" env-default:"2"  validate:"gte=1"`
}

// FallbackConfig is optional; an empty URL disables the fallback backend.
type FallbackConfig struct {
	Name    string        `yaml:"name"    env:"FALLBACK_NAME"    env-default:"backup"`
	URL     string        `yaml:"url"     env:"FALLBACK_URL"     env-default:""`
	APIKey  string        `yaml:"api_key" env:"FALLBACK_API_KEY" env-default:""`
	Timeout time.Duration `yaml:"timeout" env:"FALLBACK_TIMEOUT" env-default:"10s" validate:"gt=0"`
}

type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl"         env:"CACHE_TTL"         env-default:"5m"   validate:"gt=0"`
	MaxEntries int           `yaml:"max_entries" env:"CACHE_MAX_ENTRIES" env-default:"1000" validate:"min=1"`
}

type CORSConfig struct {
	AllowOrigins []string      `yaml:"allow_origins" env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"*"`
	MaxAge       time.Duration `yaml:"max_age"       env:"CORS_MAX_AGE"       env-default:"12h"`
}

type PostgresConfig struct {
	Enabled         bool          `yaml:"enabled"           env:"DB_ENABLED"           env-default:"false"`
	Host            string        `yaml:"host"              env:"DB_HOST"              env-default:"localhost"    validate:"required"`
	Port            int           `yaml:"port"              env:"DB_PORT"              env-default:"5432"         validate:"required,min=1,max=65535"`
	User            string        `yaml:"user"              env:"DB_USER"              env-default:"postgres"     validate:"required"`
	Password        string        `yaml:"password"          env:"DB_PASSWORD"          env-default:"postgres"     validate:"required"`
	Database        string        `yaml:"database"          env:"DB_NAME"              env-default:"eventradar"   validate:"required"`
	SSLMode         string        `yaml:"sslmode"           env:"DB_SSLMODE"           env-default:"disable"      validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"    env-default:"10"           validate:"min=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    env-default:"5"            validate:"min=1"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"           validate:"gt=0"`
}

func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// SchedulerConfig drives the cache sweeper.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval" env:"SCHEDULER_INTERVAL" env-default:"1m" validate:"required,gt=0"`
}

// TelegramConfig enables outage alerts when both token and chat id are set.
type TelegramConfig struct {
	BotToken string        `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN" env-default:""`
	ChatID   int64         `yaml:"chat_id"   env:"TELEGRAM_CHAT_ID"   env-default:"0"`
	Throttle time.Duration `yaml:"throttle"  env:"TELEGRAM_THROTTLE"  env-default:"10m"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenvport.Load(&cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return &cfg
}
