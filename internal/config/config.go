package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the reminder service.
type Config struct {
	Server   Server         `mapstructure:"server"`
	Database Database       `mapstructure:"database"`
	Redis    Redis          `mapstructure:"redis"`
	Email    Email          `mapstructure:"email"`
	Push     Push           `mapstructure:"push"`
	Scan     Scan           `mapstructure:"scan"`
	Backoff  Backoff        `mapstructure:"backoff"`
	Retry    retry.Strategy `mapstructure:"retry"` // cache/store call retries, not delivery retries
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort string `mapstructure:"http_port"` // HTTP port to listen on
}

// Database holds database master and slave configuration.
type Database struct {
	Master DatabaseNode   `mapstructure:"master"`
	Slaves []DatabaseNode `mapstructure:"slaves"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DatabaseNode holds connection parameters for a single database node.
type DatabaseNode struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	User    string `mapstructure:"user"`
	Pass    string `mapstructure:"pass"`
	Name    string `mapstructure:"name"`
	SSLMode string `mapstructure:"ssl_mode"`
}

// Redis holds Redis connection parameters.
type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// Email holds SMTP configuration for sending reminder emails.
type Email struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Push holds credentials for the push channel.
type Push struct {
	ServerKey string `mapstructure:"server_key"`
}

// Scan holds sweep and client poll configuration.
type Scan struct {
	Secret    string        `mapstructure:"secret"`     // shared secret for the scan trigger endpoint
	BatchSize int           `mapstructure:"batch_size"` // due reminders fetched per sweep
	Interval  time.Duration `mapstructure:"interval"`   // in-process sweeper cadence
	Cooldown  time.Duration `mapstructure:"cooldown"`   // minimum gap between client-triggered scans
	Tolerance time.Duration `mapstructure:"tolerance"`  // advisory early-fire window for the client bridge
}

// Backoff holds the delivery retry policy.
type Backoff struct {
	Base       time.Duration `mapstructure:"base"`
	Factor     float64       `mapstructure:"factor"`
	Cap        time.Duration `mapstructure:"cap"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// DSN returns the PostgreSQL DSN string for connecting to this database node.
func (n DatabaseNode) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		n.User, n.Pass, n.Host, n.Port, n.Name, n.SSLMode,
	)
}

// mustBindEnv binds critical environment variables to Viper keys.
//
// It panics if any environment variable cannot be bound.
func mustBindEnv() {
	bindings := map[string]string{
		"database.master.host": "DB_HOST",
		"database.master.port": "DB_PORT",
		"database.master.user": "DB_USER",
		"database.master.pass": "DB_PASSWORD",
		"database.master.name": "DB_NAME",

		"redis.address":  "REDIS_ADDRESS",
		"redis.password": "REDIS_PASSWORD",
		"redis.database": "REDIS_DATABASE",

		"email.smtp_host": "SMTP_HOST",
		"email.smtp_port": "SMTP_PORT",
		"email.username":  "SMTP_USER",
		"email.password":  "SMTP_PASS",
		"email.from":      "SMTP_FROM",

		"push.server_key": "FCM_SERVER_KEY",

		"scan.secret": "SCAN_SECRET",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			zlog.Logger.Panic().Err(err).Msgf("failed to bind env %s", env)
		}
	}
}

// setDefaults fills in the knobs most deployments never touch.
func setDefaults() {
	viper.SetDefault("scan.batch_size", 50)
	viper.SetDefault("scan.interval", 5*time.Minute)
	viper.SetDefault("scan.cooldown", 30*time.Second)
	viper.SetDefault("scan.tolerance", 2*time.Minute)

	viper.SetDefault("backoff.base", 5*time.Minute)
	viper.SetDefault("backoff.factor", 2.0)
	viper.SetDefault("backoff.cap", 30*time.Minute)
	viper.SetDefault("backoff.max_retries", 3)
}

// Must loads and validates the configuration from file and environment variables.
//
// It panics if configuration cannot be read or unmarshalled.
func Must() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to read config")
	}

	mustBindEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msgf("failed to unmarshal config: %v", err)
	}

	return &cfg
}
