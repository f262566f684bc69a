package notifications

import (
	"context"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

const workerLockKey = "notifications:worker:lock"

// Worker periodically drains the notification queue and delivers emails with
// at-least-once semantics. A best-effort distributed lock keeps multiple
// instances from draining the queue at the same time.
type Worker struct {
	log    *zap.Logger
	cfg    *config.InternalConfig
	locker contracts.LockerService
	queue  *QueueService
	mailer contracts.MailerService
	stop   chan struct{}
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue *QueueService,
	mailerSvc contracts.MailerService,
) *Worker {
	return &Worker{
		log:    log,
		cfg:    cfg,
		locker: lockerSvc,
		queue:  queue,
		mailer: mailerSvc,
		stop:   make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	interval := time.Duration(w.cfg.Notification.WorkerIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now, interval)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time, interval time.Duration) {
	w.log.Info("notifications.worker.runOnce tick", zap.Time("now", now))

	ttl := interval - time.Second
	if ttl < time.Second {
		ttl = time.Second
	}
	acquired, lockVal, err := w.locker.TryLock(ctx, workerLockKey, ttl)
	if err != nil {
		w.log.Info("worker lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Warn("worker lock not acquired; another instance is running")
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, workerLockKey, lockVal); err != nil {
			w.log.Error("worker unlock failed", zap.Error(err))
		}
	}()

	max := w.cfg.Notification.MaxQueue
	if max <= 0 {
		max = 1
	}
	items, err := w.queue.FetchN(ctx, max)
	if err != nil {
		w.log.Info("queue.FetchN error", zap.Error(err))
		return
	}

	w.log.Info("queue.FetchN success", zap.Int("fetched_count", len(items)))

	for _, item := range items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item QueuedItem) {
	task := item.Task

	if !task.NextAttemptAt.IsZero() && time.Now().Before(task.NextAttemptAt) {
		// Not due yet, return it to the tail untouched.
		if err := w.queue.Reenqueue(ctx, task); err != nil {
			w.log.Info("reenqueue of deferred task failed",
				zap.String(constvars.LoggingTaskIDKey, task.ID),
				zap.Error(err))
			return
		}
		_ = w.queue.AckMessage(item.DeliveryTag)
		return
	}

	w.log.Info("delivering notification email",
		zap.String(constvars.LoggingTaskIDKey, task.ID),
		zap.String(constvars.LoggingAppointmentIDKey, task.AppointmentID),
		zap.String(constvars.LoggingRecipientKey, task.Recipient),
		zap.Int("failed_count", task.FailedCount))

	err := w.mailer.SendEmail(task.Recipient, task.Subject, task.Body)
	if err == nil {
		if ackErr := w.queue.AckMessage(item.DeliveryTag); ackErr != nil {
			w.log.Info("ack failed after successful delivery",
				zap.String(constvars.LoggingTaskIDKey, task.ID),
				zap.Error(ackErr))
		}
		w.log.Info("notification delivered; removed from queue",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.String(constvars.LoggingRecipientKey, task.Recipient))
		return
	}

	w.log.Info("notification delivery failed",
		zap.String(constvars.LoggingTaskIDKey, task.ID),
		zap.String(constvars.LoggingRecipientKey, task.Recipient),
		zap.Error(err))

	task.FailedCount++
	if task.FailedCount >= w.cfg.Notification.ThrottleRetry {
		if dlqErr := w.queue.EnqueueToDeadQueue(ctx, task); dlqErr != nil {
			w.log.Info("enqueue to DLQ failed",
				zap.String(constvars.LoggingTaskIDKey, task.ID),
				zap.Error(dlqErr))
			return
		}
		_ = w.queue.AckMessage(item.DeliveryTag)
		w.log.Info("moved task to DLQ",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.Int("failed_count", task.FailedCount))
		return
	}

	task.NextAttemptAt = NextBackoff(time.Now(), task.FailedCount)
	if reErr := w.queue.Reenqueue(ctx, task); reErr != nil {
		w.log.Info("reenqueue failed",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.Error(reErr))
		return
	}
	_ = w.queue.AckMessage(item.DeliveryTag)
	w.log.Info("retryable failure; incremented failed count and requeued",
		zap.String(constvars.LoggingTaskIDKey, task.ID),
		zap.Int("failed_count", task.FailedCount))
}

// NextBackoff computes the earliest next delivery attempt, doubling the delay
// per failure with a one hour cap.
func NextBackoff(now time.Time, failedCount int) time.Time {
	delay := time.Minute
	for i := 1; i < failedCount; i++ {
		delay *= 2
		if delay >= time.Hour {
			delay = time.Hour
			break
		}
	}
	return now.Add(delay)
}
