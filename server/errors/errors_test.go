package errors

import (
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name     string
		err      *AppError
		wantCode int
		wantMsg  string
	}{
		{"validation", NewValidationError("bad file", cause), http.StatusBadRequest, "bad file"},
		{"not found", NewNotFoundError("missing", nil), http.StatusNotFound, "missing"},
		{"internal hides details", NewInternalError("encode failed", cause), http.StatusInternalServerError, "Внутренняя ошибка сервера"},
		{"io", NewIOError("cannot read manager_file", cause), http.StatusInternalServerError, "cannot read manager_file"},
		{"too large", NewPayloadTooLargeError("too big", nil), http.StatusRequestEntityTooLarge, "too big"},
		{"too many", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "slow down"},
		{"unavailable", NewServiceUnavailableError("timeout", cause), http.StatusServiceUnavailable, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.StatusCode())
			assert.Equal(t, tt.wantMsg, tt.err.UserMessage())
		})
	}

	assert.ErrorIs(t, NewInternalError("encode failed", cause), cause)
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "ctx"))

	original := NewValidationError("missing columns", nil).WithDetails([]string{"CIUDAD"}).WithContext("bitrix")
	wrapped := WrapError(original, "reconcile")
	assert.Equal(t, http.StatusBadRequest, wrapped.Code)
	assert.Equal(t, "reconcile: missing columns", wrapped.Message)
	assert.Equal(t, []string{"CIUDAD"}, wrapped.Details)
	assert.Equal(t, "bitrix", wrapped.GetContext())

	plain := WrapError(errors.New("boom"), "reconcile")
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
}

func TestErrorMetricsCollector(t *testing.T) {
	collector := NewErrorMetricsCollector()
	current := time.Date(2026, 1, 12, 10, 0, 30, 0, time.UTC)
	collector.now = func() time.Time { return current }

	collector.RecordError(NewValidationError("bad", nil), "/liquidacion/procesar", "req-1")
	collector.RecordError(NewValidationError("bad", nil), "/liquidacion/procesar", "req-2")
	current = current.Add(2 * time.Minute)
	collector.RecordError(NewIOError("io", nil), "/agendamiento-v2/procesar", "req-3")
	collector.RecordError(nil, "/ignored", "")

	snapshot := collector.Snapshot()
	assert.Equal(t, int64(3), snapshot.TotalErrors)
	assert.Equal(t, int64(2), snapshot.ErrorsByType["ValidationError"])
	assert.Equal(t, int64(1), snapshot.ErrorsByCode[http.StatusInternalServerError])
	assert.Equal(t, int64(2), snapshot.ErrorsByEndpoint["/liquidacion/procesar"])
	require.Len(t, snapshot.TimeBuckets, 2)
	assert.Equal(t, int64(1), snapshot.TimeBuckets[0].Count)
	assert.Equal(t, "req-3", snapshot.LastErrors[0].RequestID)
	assert.InDelta(t, 1.5, snapshot.ErrorsPerMinute, 0.001)

	// Интервалы старше часа отбрасываются
	current = current.Add(2 * time.Hour)
	collector.RecordError(NewValidationError("bad", nil), "", "")
	assert.Len(t, collector.Snapshot().TimeBuckets, 1)

	collector.Reset()
	assert.Zero(t, collector.Snapshot().TotalErrors)
}

func TestErrorMetricsCollectorConcurrent(t *testing.T) {
	collector := NewErrorMetricsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.RecordError(NewValidationError("bad", nil), "/x", "")
			_ = collector.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(20), collector.Snapshot().TotalErrors)
}
