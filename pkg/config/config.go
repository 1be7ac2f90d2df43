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
	Inventory    InventoryConfig
	PubSub       PubSubConfig
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
	Env          string `envconfig:"ZIIZII_APP_ENV" required:"true"`
	Port         string `envconfig:"ZIIZII_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ZIIZII_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ZIIZII_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ZIIZII_DB_DSN"`

	LegacyHost     string `envconfig:"ZIIZII_DB_HOST"`
	LegacyPort     int    `envconfig:"ZIIZII_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ZIIZII_DB_USER"`
	LegacyPassword string `envconfig:"ZIIZII_DB_PASSWORD"`
	LegacyName     string `envconfig:"ZIIZII_DB_NAME"`
	LegacySSLMode  string `envconfig:"ZIIZII_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ZIIZII_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ZIIZII_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ZIIZII_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ZIIZII_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: when neither URL nor Address is set, the API runs
// without idempotency protection.
type RedisConfig struct {
	URL          string        `envconfig:"ZIIZII_REDIS_URL"`
	Address      string        `envconfig:"ZIIZII_REDIS_ADDR"`
	Password     string        `envconfig:"ZIIZII_REDIS_PASSWORD"`
	DB           int           `envconfig:"ZIIZII_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ZIIZII_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ZIIZII_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ZIIZII_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ZIIZII_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ZIIZII_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type InventoryConfig struct {
	// DefaultLowStockThreshold seeds new variants that do not specify their own.
	DefaultLowStockThreshold int `envconfig:"ZIIZII_INVENTORY_LOW_STOCK_THRESHOLD" default:"5"`
}

// PubSubConfig is optional: low-stock events are only published when a
// project and topic are configured.
type PubSubConfig struct {
	ProjectID     string `envconfig:"ZIIZII_GCP_PROJECT_ID"`
	LowStockTopic string `envconfig:"ZIIZII_PUBSUB_LOW_STOCK_TOPIC" default:"ziizii-low-stock-events"`
}

func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.ProjectID) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ZIIZII_AUTO_MIGRATE" default:"false"`
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
	q := u.Query()
	q.Set("sslmode", db.LegacySSLMode)
	u.RawQuery = q.Encode()

	db.DSN = u.String()
	return nil
}
