package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	OTP          OTPConfig
	SMTP         SMTPConfig
	CORS         CORSConfig
	Seed         SeedConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SUBSLOT_APP_ENV" required:"true"`
	Port         string `envconfig:"SUBSLOT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SUBSLOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SUBSLOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SUBSLOT_DB_DSN"`
	Driver string `envconfig:"SUBSLOT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SUBSLOT_DB_HOST"`
	LegacyPort     int    `envconfig:"SUBSLOT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SUBSLOT_DB_USER"`
	LegacyPassword string `envconfig:"SUBSLOT_DB_PASSWORD"`
	LegacyName     string `envconfig:"SUBSLOT_DB_NAME"`
	LegacySSLMode  string `envconfig:"SUBSLOT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SUBSLOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SUBSLOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SUBSLOT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SUBSLOT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SUBSLOT_REDIS_URL"`
	Address      string        `envconfig:"SUBSLOT_REDIS_ADDR"`
	Password     string        `envconfig:"SUBSLOT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SUBSLOT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SUBSLOT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SUBSLOT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SUBSLOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SUBSLOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SUBSLOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SUBSLOT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SUBSLOT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SUBSLOT_JWT_EXPIRATION_MINUTES" default:"10080"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SUBSLOT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SUBSLOT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SUBSLOT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SUBSLOT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SUBSLOT_ARGON_KEY_LEN" default:"32"`
}

type OTPConfig struct {
	ExpiryMinutes int `envconfig:"SUBSLOT_OTP_EXPIRY_MINUTES" default:"10"`
}

// Expiry returns the configured OTP lifetime.
func (o OTPConfig) Expiry() time.Duration {
	if o.ExpiryMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(o.ExpiryMinutes) * time.Minute
}

type SMTPConfig struct {
	Host     string `envconfig:"SUBSLOT_SMTP_HOST"`
	Port     int    `envconfig:"SUBSLOT_SMTP_PORT" default:"587"`
	Username string `envconfig:"SUBSLOT_SMTP_USER"`
	Password string `envconfig:"SUBSLOT_SMTP_PASS"`
	From     string `envconfig:"SUBSLOT_SMTP_FROM"`
}

// Sender returns the From address, falling back to the SMTP username.
func (s SMTPConfig) Sender() string {
	if s.From != "" {
		return s.From
	}
	return s.Username
}

type CORSConfig struct {
	AllowedOrigin string `envconfig:"SUBSLOT_CORS_ALLOWED_ORIGIN" default:"http://localhost:3000"`
}

type SeedConfig struct {
	AdminEmail    string `envconfig:"SUBSLOT_SEED_ADMIN_EMAIL" default:"admin@gmail.com"`
	AdminPassword string `envconfig:"SUBSLOT_SEED_ADMIN_PASSWORD" default:"Admin@123"`
	AdminName     string `envconfig:"SUBSLOT_SEED_ADMIN_NAME" default:"Admin"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SUBSLOT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
