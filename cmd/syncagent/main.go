package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/drivers/logger"
	"telecare-service/internal/app/services/core/booking"
)

// The sync agent is the client-side half of the pipeline: it owns the local
// pending queue and replays unacknowledged bookings against the appointment
// store until each one is acknowledged, duplicated or terminal.
func main() {
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	queue := booking.NewFilePendingQueue(internalConfig.Sync.QueueFilePath)
	apiClient := booking.NewAppointmentAPIClient(internalConfig, log)
	reconciler := booking.NewReconciler(queue, apiClient, internalConfig, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.WithField("queue_file", internalConfig.Sync.QueueFilePath).Info("sync agent started")

	// Flush once at startup, then on every tick.
	reconciler.Flush(ctx)
	stop := reconciler.Start(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stop()
	log.Info("sync agent exiting")
}
