package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

func TestSuperviseConsumer_StreamCloseStopsProcess(t *testing.T) {
	for name, runErr := range map[string]error{
		"error":      errors.New("delivery channel closed"),
		"clean exit": nil,
	} {
		t.Run(name, func(t *testing.T) {
			ctx, stop := context.WithCancel(context.Background())
			defer stop()

			superviseConsumer(ctx, func(context.Context) error { return runErr }, stop, logger.NewNop())

			assert.ErrorIs(t, ctx.Err(), context.Canceled)
		})
	}
}

func TestSuperviseConsumer_ShutdownDoesNotReportFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := false

	superviseConsumer(ctx, func(ctx context.Context) error {
		cancel()
		<-ctx.Done()
		return nil
	}, func() { stopped = true }, logger.NewNop())

	assert.False(t, stopped)
}
