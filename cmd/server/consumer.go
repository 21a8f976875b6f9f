package main

import (
	"context"
	"errors"

	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

var errConsumerStopped = errors.New("event consumer stopped unexpectedly")

// superviseConsumer runs the in-process consumer until ctx ends. If the
// consumer returns on its own the whole process is stopped, so the server
// never keeps serving with a dead consumer.
func superviseConsumer(ctx context.Context, run func(context.Context) error, stop context.CancelFunc, log logger.Logger) {
	err := run(ctx)
	if ctx.Err() != nil {
		if err != nil {
			log.Warn(ctx, "Event consumer returned an error during shutdown", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}
	if err == nil {
		err = errConsumerStopped
	}
	log.Error(ctx, "Event consumer stopped, shutting down", err, nil)
	stop()
}
