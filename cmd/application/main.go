package main

import (
	"flag"
	"log"

	"datahealth_api/config"
	"datahealth_api/internal/health/app"
	"datahealth_api/pkg/dbconnect/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s (%v), using defaults", *configPath, err)
		cfg = config.DefaultConfig()
		cfg.Postgres.ApplyEnv()
	}

	connector := postgres.NewPgConnector(&cfg.Postgres)
	server := app.NewHealthServer(connector, cfg)
	server.Run()
}
