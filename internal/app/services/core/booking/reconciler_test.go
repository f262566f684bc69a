package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"telecare-service/internal/app/contracts"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(t *testing.T, storeBaseUrl string) (*Reconciler, contracts.PendingSyncQueue) {
	t.Helper()
	internalConfig := testInternalConfig(storeBaseUrl)
	internalConfig.Sync.QueueFilePath = filepath.Join(t.TempDir(), "queue.json")

	queue := NewFilePendingQueue(internalConfig.Sync.QueueFilePath)
	apiClient := NewAppointmentAPIClient(internalConfig, testLogger())
	return NewReconciler(queue, apiClient, internalConfig, testLogger()), queue
}

func TestReconcilerFlush(t *testing.T) {
	t.Run("synced entries are removed oldest first", func(t *testing.T) {
		var order []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			order = append(order, r.FormValue("data"))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"data":{"id":"apt-1","status":"pending"}}`))
		}))
		defer server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)

		base := time.Now().UTC()
		older := testEntry("local-1", base)
		older.Payload.Time = "09:00"
		newer := testEntry("local-2", base.Add(time.Minute))
		newer.Payload.Time = "11:00"
		// Appended out of order on purpose.
		require.NoError(t, queue.Append(newer))
		require.NoError(t, queue.Append(older))

		reconciler.Flush(context.Background())

		entries, err := queue.List()
		require.NoError(t, err)
		assert.Empty(t, entries)

		require.Len(t, order, 2)
		assert.Contains(t, order[0], "09:00")
		assert.Contains(t, order[1], "11:00")
	})

	t.Run("conflict counts as already synced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"success":false,"message":"already booked"}`))
		}))
		defer server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)
		require.NoError(t, queue.Append(testEntry("local-1", time.Now().UTC())))

		reconciler.Flush(context.Background())

		entries, err := queue.List()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("lock contention on the store keeps the entry", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusLocked)
			w.Write([]byte(`{"success":false,"message":"Another booking for this slot is being processed, please try again"}`))
		}))
		defer server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)
		base := time.Now().UTC()
		require.NoError(t, queue.Append(testEntry("local-1", base)))
		require.NoError(t, queue.Append(testEntry("local-2", base.Add(time.Second))))

		reconciler.Flush(context.Background())

		entries, err := queue.List()
		require.NoError(t, err)
		// Both entries survive: contention is not a persistence receipt.
		require.Len(t, entries, 2)
		assert.Equal(t, 1, entries[0].RetryCount)
		assert.False(t, entries[0].Terminal)
		// A contended head entry does not block the rest of the pass.
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("a malformed local id is marked terminal and never submitted", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"data":{"id":"apt-1","status":"pending"}}`))
		}))
		defer server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)
		require.NoError(t, queue.Append(testEntry("booking-42", time.Now().UTC())))

		reconciler.Flush(context.Background())

		assert.Zero(t, atomic.LoadInt32(&calls))
		entries, err := queue.List()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Terminal)
	})

	t.Run("validation rejection marks the entry terminal immediately", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"message":"bad payload"}`))
		}))
		defer server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)
		require.NoError(t, queue.Append(testEntry("local-1", time.Now().UTC())))

		reconciler.Flush(context.Background())

		entries, err := queue.List()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Terminal)
		assert.Zero(t, entries[0].RetryCount)
	})

	t.Run("network failure increments the retry count and stops the pass", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)
		base := time.Now().UTC()
		require.NoError(t, queue.Append(testEntry("local-1", base)))
		require.NoError(t, queue.Append(testEntry("local-2", base.Add(time.Second))))

		reconciler.Flush(context.Background())

		entries, err := queue.List()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 1, entries[0].RetryCount)
		assert.False(t, entries[0].Terminal)
		// The second entry was never attempted.
		assert.Zero(t, entries[1].RetryCount)
	})

	t.Run("retry budget exhaustion marks the entry terminal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)
		entry := testEntry("local-1", time.Now().UTC())
		entry.RetryCount = 2 // MaxRetries is 3 in the test config
		require.NoError(t, queue.Append(entry))

		reconciler.Flush(context.Background())

		entries, err := queue.List()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 3, entries[0].RetryCount)
		assert.True(t, entries[0].Terminal)
	})

	t.Run("terminal entries are never replayed", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"data":{"id":"apt-1","status":"pending"}}`))
		}))
		defer server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)
		terminal := testEntry("local-1", time.Now().UTC())
		terminal.Terminal = true
		require.NoError(t, queue.Append(terminal))

		reconciler.Flush(context.Background())

		assert.Zero(t, atomic.LoadInt32(&calls))
		entries, err := queue.List()
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("a reconciled booking is submitted exactly once", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"data":{"id":"apt-1","status":"pending"}}`))
		}))
		defer server.Close()

		reconciler, queue := newTestReconciler(t, server.URL)
		require.NoError(t, queue.Append(testEntry("local-1", time.Now().UTC())))

		reconciler.Flush(context.Background())
		reconciler.Flush(context.Background())

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
