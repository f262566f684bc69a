package booking

import (
	"context"
	"sort"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/exceptions"
	"telecare-service/internal/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
)

// Reconciler drains the pending queue once connectivity returns. Entries are
// replayed oldest first; a conflict from the store means the booking already
// made it there and counts as synced.
type Reconciler struct {
	queue      contracts.PendingSyncQueue
	client     contracts.AppointmentAPIClient
	maxRetries int
	interval   time.Duration
	log        *logrus.Logger
	stop       chan struct{}
}

func NewReconciler(
	queue contracts.PendingSyncQueue,
	client contracts.AppointmentAPIClient,
	internalConfig *config.InternalConfig,
	logger *logrus.Logger,
) *Reconciler {
	interval := time.Duration(internalConfig.Sync.IntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	maxRetries := internalConfig.Sync.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &Reconciler{
		queue:      queue,
		client:     client,
		maxRetries: maxRetries,
		interval:   interval,
		log:        logger,
		stop:       make(chan struct{}),
	}
}

// Start begins the periodic flush loop. It returns a stop function.
func (r *Reconciler) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(r.interval)

	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-r.stop:
				ticker.Stop()
				return
			case <-ticker.C:
				r.Flush(ctx)
			}
		}
	}()

	return func() {
		close(r.stop)
	}
}

// Flush replays pending entries oldest first. It stops early when the store
// is unreachable; the rest of the queue would only hit the same dead network.
func (r *Reconciler) Flush(ctx context.Context) {
	entries, err := r.queue.List()
	if err != nil {
		r.log.WithError(err).Error("reconciler could not read pending queue")
		return
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	pending := 0
	for i := range entries {
		if !entries[i].Terminal {
			pending++
		}
	}
	if pending == 0 {
		return
	}
	r.log.WithField("pending_entries", pending).Info("reconciler flushing queue")

	for i := range entries {
		entry := entries[i]
		if entry.Terminal {
			continue
		}
		if !utils.IsLocalSyncID(entry.LocalID) {
			// A hand-edited or corrupted entry; never replay it.
			entry.Terminal = true
			r.log.WithField("local_id", entry.LocalID).Warn("pending entry has a malformed local id, marking terminal")
			r.updateEntry(&entry)
			continue
		}
		if !r.flushEntry(ctx, &entry) {
			return
		}
	}
}

// flushEntry replays one entry. The return value tells the caller whether to
// keep going; false means the network is down.
func (r *Reconciler) flushEntry(ctx context.Context, entry *models.PendingSyncEntry) bool {
	request := requests.FromPayload(entry.Payload)
	attachments := make([]contracts.UploadedFile, 0, len(entry.Files))
	for _, file := range entry.Files {
		attachments = append(attachments, contracts.UploadedFile{
			FileName: file.FileName,
			Content:  file.Content,
		})
	}

	record, err := r.client.CreateAppointment(ctx, request, attachments)
	if err == nil {
		r.log.WithFields(logrus.Fields{
			"local_id":       entry.LocalID,
			"appointment_id": record.ID,
		}).Info("pending booking synchronized")
		r.removeEntry(entry.LocalID)
		return true
	}

	if exceptions.HasStatusCode(err, constvars.StatusConflict) {
		// An earlier submission of this booking already landed; the queue
		// entry is done.
		r.log.WithField("local_id", entry.LocalID).Info("pending booking already exists on store, dropping entry")
		r.removeEntry(entry.LocalID)
		return true
	}

	if exceptions.HasStatusCode(err, constvars.StatusLocked) {
		// The store is up but another writer holds this slot's lock. The
		// entry stays in the queue; only its own retry budget is charged.
		entry.RetryCount++
		entry.LastAttempt = time.Now().UTC()
		if entry.RetryCount >= r.maxRetries {
			entry.Terminal = true
		}
		r.log.WithFields(logrus.Fields{
			"local_id":    entry.LocalID,
			"retry_count": entry.RetryCount,
		}).Info("store is processing a concurrent booking for this slot, keeping entry")
		r.updateEntry(entry)
		return true
	}

	if exceptions.HasStatusCode(err, constvars.StatusBadRequest) {
		// A validation verdict will not change on retry.
		entry.Terminal = true
		entry.LastAttempt = time.Now().UTC()
		r.log.WithError(err).WithField("local_id", entry.LocalID).Warn("store rejected pending booking, marking terminal")
		r.updateEntry(entry)
		return true
	}

	entry.RetryCount++
	entry.LastAttempt = time.Now().UTC()
	if entry.RetryCount >= r.maxRetries {
		entry.Terminal = true
		r.log.WithFields(logrus.Fields{
			"local_id":    entry.LocalID,
			"retry_count": entry.RetryCount,
		}).Warn("pending booking exhausted its retry budget, marking terminal")
	} else {
		r.log.WithError(err).WithFields(logrus.Fields{
			"local_id":    entry.LocalID,
			"retry_count": entry.RetryCount,
		}).Info("store unreachable, will retry pending booking")
	}
	r.updateEntry(entry)
	return false
}

func (r *Reconciler) removeEntry(localID string) {
	if err := r.queue.Remove(localID); err != nil {
		r.log.WithError(err).WithField("local_id", localID).Error("failed to remove entry from pending queue")
	}
}

func (r *Reconciler) updateEntry(entry *models.PendingSyncEntry) {
	if err := r.queue.Update(entry); err != nil {
		r.log.WithError(err).WithField("local_id", entry.LocalID).Error("failed to update entry in pending queue")
	}
}
