package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// FORGEQUOTE_-prefixed names so the prefix mostly documents intent.
const EnvPrefix = "forgequote"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "FORGEQUOTE_APP_ENV"
	EnvPort     = "FORGEQUOTE_APP_PORT"
	EnvRedisURL = "FORGEQUOTE_REDIS_URL"

	EnvDBDSN  = "FORGEQUOTE_DB_DSN"
	EnvDBHost = "FORGEQUOTE_DB_HOST"
	EnvDBUser = "FORGEQUOTE_DB_USER"
	EnvDBName = "FORGEQUOTE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
