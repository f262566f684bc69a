package booking

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// filePendingQueue persists unacknowledged bookings as a JSON array on local
// disk so they survive restarts and network outages. Writes go through a temp
// file and a rename so a crash never leaves a half-written queue behind.
type filePendingQueue struct {
	path string
	mu   sync.Mutex
}

func NewFilePendingQueue(path string) contracts.PendingSyncQueue {
	return &filePendingQueue{path: path}
}

func (q *filePendingQueue) Append(entry *models.PendingSyncEntry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load()
	if err != nil {
		return err
	}
	entries = append(entries, *entry)
	return q.save(entries)
}

func (q *filePendingQueue) List() ([]models.PendingSyncEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load()
}

func (q *filePendingQueue) Update(entry *models.PendingSyncEntry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load()
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].LocalID == entry.LocalID {
			entries[i] = *entry
			return q.save(entries)
		}
	}
	return exceptions.ErrPendingQueueWrite(fmt.Errorf("entry %s not found", entry.LocalID))
}

func (q *filePendingQueue) Remove(localID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, entry := range entries {
		if entry.LocalID != localID {
			kept = append(kept, entry)
		}
	}
	return q.save(kept)
}

func (q *filePendingQueue) load() ([]models.PendingSyncEntry, error) {
	data, err := os.ReadFile(q.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.PendingSyncEntry{}, nil
		}
		return nil, exceptions.ErrPendingQueueRead(err)
	}
	if len(data) == 0 {
		return []models.PendingSyncEntry{}, nil
	}

	var entries []models.PendingSyncEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, exceptions.ErrPendingQueueCorrupt(err)
	}
	return entries, nil
}

func (q *filePendingQueue) save(entries []models.PendingSyncEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	dir := filepath.Dir(q.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(q.path)+".tmp-*")
	if err != nil {
		return exceptions.ErrPendingQueueWrite(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return exceptions.ErrPendingQueueWrite(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return exceptions.ErrPendingQueueWrite(err)
	}
	if err := os.Rename(tmpName, q.path); err != nil {
		os.Remove(tmpName)
		return exceptions.ErrPendingQueueWrite(err)
	}
	return nil
}
