package config

// EnvPrefix namespaces every app-owned environment variable.
const EnvPrefix = "TMT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv      = "TMT_APP_ENV"
	EnvAppPort     = "TMT_APP_PORT"
	EnvDBDSN       = "TMT_DB_DSN"
	EnvDBHost      = "TMT_DB_HOST"
	EnvDBUser      = "TMT_DB_USER"
	EnvDBName      = "TMT_DB_NAME"
	EnvRedisURL    = "TMT_REDIS_URL"
	EnvAdminAPIKey = "TMT_ADMIN_API_KEY"

	// EnvDatabaseURL is the conventional hosted-platform variable and is
	// honored as a DSN fallback.
	EnvDatabaseURL = "DATABASE_URL"

	EnvMailgunAPIKey = "MAILGUN_API_KEY"
	EnvMailgunDomain = "MAILGUN_DOMAIN"
	EnvFromEmail     = "FROM_EMAIL"
	EnvAdminEmail    = "ADMIN_EMAIL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
