package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Outbound OutboundConfig
	LogLevel string
}

type ServerConfig struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	CORSAllowedOrigins []string
}

type DBConfig struct {
	Driver  string
	Host    string
	Port    int
	User    string
	Pass    string
	Name    string
	SSLMode string
	DSN     string
}

// OutboundConfig controls how requests to target servers are executed.
type OutboundConfig struct {
	DefaultTimeout       time.Duration
	BlockPrivateNetworks bool
}

func LoadConfig() (*Config, error) {
	dbConfig, err := loadDBConfig()
	if err != nil {
		return nil, err
	}

	outboundTimeout := 30 * time.Second
	if v := os.Getenv("OUTBOUND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid OUTBOUND_TIMEOUT %q", v)
		}
		outboundTimeout = d
	}

	blockPrivate := false
	if v := os.Getenv("BLOCK_PRIVATE_NETWORKS"); v != "" {
		blockPrivate, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BLOCK_PRIVATE_NETWORKS: %v", err)
		}
	}

	serverConfig := ServerConfig{
		Port:               getEnvDefault("SERVER_PORT", "8080"),
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       2 * time.Minute,
		IdleTimeout:        60 * time.Second,
		CORSAllowedOrigins: splitList(getEnvDefault("CORS_ALLOWED_ORIGINS", "*")),
	}

	return &Config{
		Server: serverConfig,
		DB:     dbConfig,
		Outbound: OutboundConfig{
			DefaultTimeout:       outboundTimeout,
			BlockPrivateNetworks: blockPrivate,
		},
		LogLevel: os.Getenv("LOG_LEVEL"),
	}, nil
}

func loadDBConfig() (DBConfig, error) {
	driver := strings.ToLower(getEnvDefault("DB_DRIVER", DriverSQLite))

	switch driver {
	case DriverSQLite:
		return DBConfig{
			Driver: DriverSQLite,
			DSN:    getEnvDefault("SQLITE_PATH", "./rest-client.db"),
		}, nil
	case DriverPostgres:
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			return DBConfig{Driver: DriverPostgres, DSN: dsn}, nil
		}

		dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
		if err != nil {
			return DBConfig{}, fmt.Errorf("invalid DB_PORT: %v", err)
		}

		dBConfig := DBConfig{
			Driver:  DriverPostgres,
			Host:    os.Getenv("DB_HOST"),
			Port:    dbPort,
			User:    os.Getenv("DB_USER"),
			Pass:    os.Getenv("DB_PASS"),
			Name:    os.Getenv("DB_NAME"),
			SSLMode: getEnvDefault("DB_SSLMODE", "disable"),
		}
		dBConfig.DSN = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dBConfig.Host, dBConfig.Port, dBConfig.User, dBConfig.Pass, dBConfig.Name, dBConfig.SSLMode,
		)
		return dBConfig, nil
	default:
		return DBConfig{}, fmt.Errorf("unsupported DB_DRIVER %q: must be %q or %q", driver, DriverPostgres, DriverSQLite)
	}
}

// SlogLevel maps LogLevel to an slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
