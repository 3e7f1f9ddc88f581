package config

import (
	"fmt"
	"os"
)

type DbConfig interface {
	GetConnectionString() string
}

// PostgresConfig represents the configuration needed to connect to a PostgreSQL database
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

func (pc *PostgresConfig) GetConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

// ApplyEnv overrides config file values with environment variables when set,
// so a partial yaml still connects with local defaults.
func (pc *PostgresConfig) ApplyEnv() {
	pc.Host = envOr("POSTGRES_HOST", pc.Host, "localhost")
	pc.Port = envOr("POSTGRES_PORT", pc.Port, "5432")
	pc.User = envOr("POSTGRES_USER", pc.User, "postgres")
	pc.Password = envOr("POSTGRES_PASSWORD", pc.Password, "postgres")
	pc.DBName = envOr("POSTGRES_NAME", pc.DBName, "postgres")
}

func envOr(key, current, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if current != "" {
		return current
	}
	return fallback
}
