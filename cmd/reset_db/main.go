package main

import (
	"context"

	"driveshare/config"
	"driveshare/pkg/logger"
	"driveshare/storage/postgres"
)

// Development utility: wipes all tenant data while keeping the schema.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// CASCADE cleans up cars and payment_methods referencing hosts.
	_, err = pg.GetPool().Exec(context.Background(), "TRUNCATE TABLE hosts, clients, cars, payment_methods CASCADE")
	if err != nil {
		log.Error("failed to truncate tables", logger.Error(err))
	} else {
		log.Info("truncated hosts, clients, cars and payment_methods tables")
	}
}
