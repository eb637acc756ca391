// Comando snapshot: ejecuta una vez el job de snapshots de inventario para todos los negocios.
// Pensado para un cron externo cuando SNAPSHOT_ENABLED=false en el proceso API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/retail-inventory/internal/application/reports"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-inventory/pkg/config"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

func main() {
	snapshotType := flag.String("type", entity.SnapshotTypeWeekly, "tipo de snapshot (weekly, manual)")
	timeout := flag.Duration("timeout", 30*time.Minute, "tiempo máximo de la corrida")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "snapshot"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	start := time.Now()
	res, err := reports.NewSnapshotUseCase(postgres.NewTxRunner(pool)).Run(ctx, *snapshotType)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("snapshot falló; no se creó ningún snapshot")
		pool.Close()
		os.Exit(1)
	}
	for _, s := range res.Snapshots {
		log.Info().
			Str("business_id", s.BusinessID).
			Str("snapshot_id", s.SnapshotID).
			Int("items", s.Items).
			Int("locations", s.Locations).
			Msg("snapshot creado")
	}
	log.Info().
		Int("businesses", len(res.Snapshots)).
		Time("snapshot_date", res.SnapshotDate).
		Dur("duration", time.Since(start)).
		Msg("snapshot completado")
}
