package config

// EnvPrefix is passed to envconfig; individual fields pin their full names.
const EnvPrefix = "ZIIZII"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "ZIIZII_APP_ENV"
	EnvPort   = "ZIIZII_APP_PORT"

	EnvDBDSN  = "ZIIZII_DB_DSN"
	EnvDBHost = "ZIIZII_DB_HOST"
	EnvDBUser = "ZIIZII_DB_USER"
	EnvDBName = "ZIIZII_DB_NAME"

	EnvRedisURL = "ZIIZII_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
