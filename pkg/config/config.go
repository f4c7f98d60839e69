package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Mail      MailConfig
	CORS      CORSConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Flags     FlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.Flags); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TMT_APP_ENV" default:"development"`
	Port         string `envconfig:"TMT_APP_PORT" default:"5001"`
	LogLevel     string `envconfig:"TMT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TMT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TMT_DB_DSN"`
	Driver string `envconfig:"TMT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TMT_DB_HOST"`
	LegacyPort     int    `envconfig:"TMT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TMT_DB_USER"`
	LegacyPassword string `envconfig:"TMT_DB_PASSWORD"`
	LegacyName     string `envconfig:"TMT_DB_NAME"`
	LegacySSLMode  string `envconfig:"TMT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TMT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TMT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TMT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TMT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TMT_REDIS_URL"`
	Address      string        `envconfig:"TMT_REDIS_ADDR"`
	Password     string        `envconfig:"TMT_REDIS_PASSWORD"`
	DB           int           `envconfig:"TMT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TMT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TMT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TMT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TMT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TMT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured at all. Rate
// limiting is skipped when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type MailConfig struct {
	Provider string `envconfig:"TMT_MAIL_PROVIDER" default:"mailgun"`

	MailgunAPIKey  string `envconfig:"MAILGUN_API_KEY"`
	MailgunDomain  string `envconfig:"MAILGUN_DOMAIN"`
	MailgunBaseURL string `envconfig:"MAILGUN_BASE_URL" default:"https://api.mailgun.net/v3"`

	SMTPHost     string `envconfig:"TMT_SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"TMT_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"TMT_SMTP_USERNAME"`
	SMTPPassword string `envconfig:"TMT_SMTP_PASSWORD"`

	FromName   string        `envconfig:"TMT_MAIL_FROM_NAME" default:"TMT Coconut Cruisers"`
	FromEmail  string        `envconfig:"FROM_EMAIL"`
	AdminEmail string        `envconfig:"ADMIN_EMAIL" default:"info@tmtsbahamas.com"`
	Timeout    time.Duration `envconfig:"TMT_MAIL_TIMEOUT" default:"10s"`
}

// From returns the display sender. The mailbox falls back to the bookings
// address on the mailgun domain, matching the hosted setup.
func (m MailConfig) From() string {
	from := m.FromEmail
	if from == "" && m.MailgunDomain != "" {
		from = "bookings@" + m.MailgunDomain
	}
	if m.FromName == "" {
		return from
	}
	return fmt.Sprintf("%s <%s>", m.FromName, from)
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TMT_CORS_ORIGINS" default:"http://localhost:3000"`
}

type AdminConfig struct {
	APIKey string `envconfig:"TMT_ADMIN_API_KEY"`
}

type RateLimitConfig struct {
	BookingWindow  time.Duration `envconfig:"TMT_RATE_LIMIT_BOOKING_WINDOW" default:"1m"`
	BookingIPLimit int           `envconfig:"TMT_RATE_LIMIT_BOOKING_IP_LIMIT" default:"10"`
	ContactWindow  time.Duration `envconfig:"TMT_RATE_LIMIT_CONTACT_WINDOW" default:"5m"`
	ContactIPLimit int           `envconfig:"TMT_RATE_LIMIT_CONTACT_IP_LIMIT" default:"5"`
}

type FlagsConfig struct {
	UseSQLite   bool   `envconfig:"TMT_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"TMT_SQLITE_PATH" default:"instance/cars.db"`
	AutoMigrate bool   `envconfig:"TMT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(flags FlagsConfig) error {
	if flags.UseSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = flags.SQLitePath
		}
		return nil
	}

	if db.DSN != "" {
		return nil
	}

	// Hosted deployments inject DATABASE_URL directly.
	if fromEnv := os.Getenv(EnvDatabaseURL); fromEnv != "" {
		db.DSN = fromEnv
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s, %s, or %s are required", EnvDBDSN, EnvDatabaseURL, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
