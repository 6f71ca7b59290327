package config

// EnvPrefix scopes every environment variable read by Load.
const EnvPrefix = "subslot"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SUBSLOT_DB_DSN"
	EnvDBHost = "SUBSLOT_DB_HOST"
	EnvDBUser = "SUBSLOT_DB_USER"
	EnvDBName = "SUBSLOT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
