package config

import (
	"os"

	"datahealth_api/config/values"

	"gopkg.in/yaml.v3"
)

type Config interface {
}

// IBPConfig holds the connection parameters for a SAP IBP tenant.
type IBPConfig struct {
	URL               string `yaml:"url"`
	Client            string `yaml:"client"`
	Username          string `yaml:"username"`
	Password          string `yaml:"password"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	Burst             int    `yaml:"burst"`
	WorkerCount       int    `yaml:"worker_count"`
}

type ServerConfig struct {
	Addr                string   `yaml:"addr"`
	DemoMode            bool     `yaml:"demo_mode"`
	DemoSeed            int64    `yaml:"demo_seed"`
	SyncIntervalMinutes int      `yaml:"sync_interval_minutes"`
	DataTypes           []string `yaml:"data_types"`
}

// ImportConfig describes one legacy CSV feed to load into a master
// data table.
type ImportConfig struct {
	DataType  string            `yaml:"data_type"`
	InfSource string            `yaml:"inf_source"`
	CSVSource string            `yaml:"csv_source"`
	Renaming  map[string]string `yaml:"renaming"`
}

type AppConfig struct {
	Server   ServerConfig          `yaml:"server"`
	IBP      IBPConfig             `yaml:"ibp"`
	Postgres PostgresConfig        `yaml:"postgres"`
	Imports  []ImportConfig        `yaml:"imports"`
	Analyzer values.AnalyzerValues `yaml:"analyzer"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	config.Postgres.ApplyEnv()
	return config, nil
}

// DefaultConfig returns a config that runs the monitor in demo mode
// against a local Postgres with the standard analyzer weights.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:                ":8080",
			DemoMode:            true,
			DemoSeed:            42,
			SyncIntervalMinutes: 0,
		},
		IBP: IBPConfig{
			RequestsPerMinute: 50,
			Burst:             10,
			WorkerCount:       3,
		},
		Analyzer: values.DefaultAnalyzerValues(),
	}
}
