package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

type fakeRunner struct {
	calls []string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, snapshotType string) (*dto.SnapshotRunResult, error) {
	f.calls = append(f.calls, snapshotType)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SnapshotRunResult{
		SnapshotDate: time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC),
		SnapshotType: snapshotType,
		Snapshots:    []dto.SnapshotCreated{{BusinessID: "b1"}, {BusinessID: "b2"}},
	}, nil
}

func TestNewSnapshotScheduler_ExpresionInvalida(t *testing.T) {
	_, err := NewSnapshotScheduler("every monday", &fakeRunner{}, logger.Nop())
	assert.Error(t, err)
}

func TestRunOnce_RegistraResultado(t *testing.T) {
	var buf bytes.Buffer
	runner := &fakeRunner{}
	s, err := NewSnapshotScheduler("0 3 * * 1", runner, logger.New(logger.Config{Env: "test", Level: "info", Out: &buf}))
	require.NoError(t, err)

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"weekly"}, runner.calls)
	assert.Contains(t, buf.String(), `"businesses":2`)
	assert.Contains(t, buf.String(), "snapshot job completado")
}

func TestRunOnce_ErrorNoPropaga(t *testing.T) {
	var buf bytes.Buffer
	runner := &fakeRunner{err: errors.New("commit transaction: boom")}
	s, err := NewSnapshotScheduler("@weekly", runner, logger.New(logger.Config{Env: "test", Level: "info", Out: &buf}))
	require.NoError(t, err)

	s.RunOnce(context.Background())

	assert.Contains(t, buf.String(), "snapshot job falló")
	assert.Contains(t, buf.String(), "boom")
}

func TestStartStop(t *testing.T) {
	s, err := NewSnapshotScheduler("0 3 * * 1", &fakeRunner{}, logger.Nop())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
