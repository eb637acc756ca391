// Package scheduler dispara el job de snapshots dentro del proceso API.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

// SnapshotRunner ejecuta una corrida del job de snapshots.
type SnapshotRunner interface {
	Run(ctx context.Context, snapshotType string) (*dto.SnapshotRunResult, error)
}

// SnapshotScheduler programa SnapshotRunner con una expresión cron (UTC, 5 campos).
type SnapshotScheduler struct {
	cron    *cron.Cron
	runner  SnapshotRunner
	log     *logger.Logger
	timeout time.Duration
}

// NewSnapshotScheduler valida la expresión y registra el job. Las ejecuciones no se solapan.
func NewSnapshotScheduler(cronExpr string, runner SnapshotRunner, log *logger.Logger) (*SnapshotScheduler, error) {
	s := &SnapshotScheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		runner:  runner,
		log:     log,
		timeout: 30 * time.Minute,
	}
	if _, err := s.cron.AddFunc(cronExpr, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("snapshot cron %q: %w", cronExpr, err)
	}
	return s, nil
}

// Start arranca el planificador en segundo plano.
func (s *SnapshotScheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Info().Time("next_run", e.Next).Msg("snapshot scheduler iniciado")
	}
}

// Stop detiene el planificador y espera a que termine una ejecución en curso o a que venza ctx.
func (s *SnapshotScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("snapshot scheduler: ejecución en curso abandonada al apagar")
	}
}

// RunOnce ejecuta el job y registra el resultado. Un error no detiene el planificador.
func (s *SnapshotScheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	res, err := s.runner.Run(ctx, entity.SnapshotTypeWeekly)
	if err != nil {
		s.log.Error().Err(err).Dur("duration", time.Since(start)).Msg("snapshot job falló")
		return
	}
	s.log.Info().
		Int("businesses", len(res.Snapshots)).
		Time("snapshot_date", res.SnapshotDate).
		Dur("duration", time.Since(start)).
		Msg("snapshot job completado")
}
