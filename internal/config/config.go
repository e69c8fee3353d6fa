package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Database   DatabaseConfig
	Processing ProcessingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN builds a postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type ProcessingConfig struct {
	MaxConcurrentSegments int
	Verbose               bool
	DataDir               string
	ParametersFile        string
	MethodsInput          string
	MethodsOutput         string
	StandardsInput        string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_NAME", "quantitation")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("PROCESSING_MAX_CONCURRENT_SEGMENTS", 4)
	v.SetDefault("PROCESSING_VERBOSE", false)
	v.SetDefault("PROCESSING_DATA_DIR", ".")
	v.SetDefault("PROCESSING_PARAMETERS_FILE", "")
	v.SetDefault("PROCESSING_QUANTITATION_METHODS_INPUT", "quantitationMethods.csv")
	v.SetDefault("PROCESSING_QUANTITATION_METHODS_OUTPUT", "quantitationMethods_out.csv")
	v.SetDefault("PROCESSING_STANDARDS_CONCENTRATIONS_INPUT", "standardsConcentrations.csv")

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	maxConcurrent := v.GetInt("PROCESSING_MAX_CONCURRENT_SEGMENTS")
	if maxConcurrent <= 0 {
		return nil, fmt.Errorf("PROCESSING_MAX_CONCURRENT_SEGMENTS must be positive, got %d", maxConcurrent)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
		Processing: ProcessingConfig{
			MaxConcurrentSegments: maxConcurrent,
			Verbose:               v.GetBool("PROCESSING_VERBOSE"),
			DataDir:               v.GetString("PROCESSING_DATA_DIR"),
			ParametersFile:        v.GetString("PROCESSING_PARAMETERS_FILE"),
			MethodsInput:          v.GetString("PROCESSING_QUANTITATION_METHODS_INPUT"),
			MethodsOutput:         v.GetString("PROCESSING_QUANTITATION_METHODS_OUTPUT"),
			StandardsInput:        v.GetString("PROCESSING_STANDARDS_CONCENTRATIONS_INPUT"),
		},
	}

	return cfg, nil
}
