package errors

import (
	"sync"
	"time"
)

// ErrorMetricsCollector собирает метрики ошибок для мониторинга
type ErrorMetricsCollector struct {
	mu sync.RWMutex

	totalErrors      int64
	errorsByType     map[string]int64
	errorsByCode     map[int]int64
	errorsByEndpoint map[string]int64
	errorsByMinute   []ErrorTimeBucket // последний час, новые первыми

	lastErrors    []ErrorRecord
	maxLastErrors int

	startTime time.Time
	now       func() time.Time
}

// ErrorTimeBucket метрики за одну минуту
type ErrorTimeBucket struct {
	Time   time.Time        `json:"time"`
	Count  int64            `json:"count"`
	ByType map[string]int64 `json:"by_type"`
}

// ErrorRecord запись об ошибке
type ErrorRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Code        int       `json:"code"`
	Message     string    `json:"message"`
	Endpoint    string    `json:"endpoint"`
	RequestID   string    `json:"request_id"`
	UserMessage string    `json:"user_message"`
}

// MetricsSnapshot копия метрик на момент запроса
type MetricsSnapshot struct {
	TotalErrors      int64             `json:"total_errors"`
	ErrorsByType     map[string]int64  `json:"errors_by_type"`
	ErrorsByCode     map[int]int64     `json:"errors_by_code"`
	ErrorsByEndpoint map[string]int64  `json:"errors_by_endpoint"`
	TimeBuckets      []ErrorTimeBucket `json:"time_buckets"`
	LastErrors       []ErrorRecord     `json:"last_errors"`
	UptimeSeconds    float64           `json:"uptime_seconds"`
	ErrorsPerMinute  float64           `json:"errors_per_minute"`
}

// NewErrorMetricsCollector создает новый сборщик метрик ошибок
func NewErrorMetricsCollector() *ErrorMetricsCollector {
	emc := &ErrorMetricsCollector{maxLastErrors: 100, now: time.Now}
	emc.reset()
	return emc
}

// RecordError записывает ошибку в метрики
func (emc *ErrorMetricsCollector) RecordError(err *AppError, endpoint, requestID string) {
	if err == nil {
		return
	}
	emc.mu.Lock()
	defer emc.mu.Unlock()

	now := emc.now()
	errorType := ErrorType(err.Code)

	emc.totalErrors++
	emc.errorsByType[errorType]++
	emc.errorsByCode[err.Code]++
	if endpoint != "" {
		emc.errorsByEndpoint[endpoint]++
	}
	emc.addToTimeBucket(now, errorType)

	record := ErrorRecord{
		Timestamp:   now,
		Type:        errorType,
		Code:        err.Code,
		Message:     err.Error(),
		Endpoint:    endpoint,
		RequestID:   requestID,
		UserMessage: err.UserMessage(),
	}
	emc.lastErrors = append([]ErrorRecord{record}, emc.lastErrors...)
	if len(emc.lastErrors) > emc.maxLastErrors {
		emc.lastErrors = emc.lastErrors[:emc.maxLastErrors]
	}
}

// ErrorType определяет тип ошибки по коду
func ErrorType(code int) string {
	switch code {
	case 400:
		return "ValidationError"
	case 404:
		return "NotFoundError"
	case 413:
		return "PayloadTooLargeError"
	case 429:
		return "TooManyRequestsError"
	case 500:
		return "InternalError"
	case 503:
		return "ServiceUnavailableError"
	default:
		return "UnknownError"
	}
}

func (emc *ErrorMetricsCollector) addToTimeBucket(now time.Time, errorType string) {
	minute := now.Truncate(time.Minute)

	if len(emc.errorsByMinute) > 0 && emc.errorsByMinute[0].Time.Equal(minute) {
		emc.errorsByMinute[0].Count++
		emc.errorsByMinute[0].ByType[errorType]++
	} else {
		emc.errorsByMinute = append([]ErrorTimeBucket{{
			Time:   minute,
			Count:  1,
			ByType: map[string]int64{errorType: 1},
		}}, emc.errorsByMinute...)
	}

	// Оставляем только последний час
	oneHourAgo := now.Add(-time.Hour)
	for i, bucket := range emc.errorsByMinute {
		if !bucket.Time.After(oneHourAgo) {
			emc.errorsByMinute = emc.errorsByMinute[:i]
			break
		}
	}
}

// Snapshot возвращает копию всех метрик
func (emc *ErrorMetricsCollector) Snapshot() MetricsSnapshot {
	emc.mu.RLock()
	defer emc.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalErrors:      emc.totalErrors,
		ErrorsByType:     make(map[string]int64, len(emc.errorsByType)),
		ErrorsByCode:     make(map[int]int64, len(emc.errorsByCode)),
		ErrorsByEndpoint: make(map[string]int64, len(emc.errorsByEndpoint)),
		TimeBuckets:      make([]ErrorTimeBucket, len(emc.errorsByMinute)),
		LastErrors:       make([]ErrorRecord, len(emc.lastErrors)),
		UptimeSeconds:    emc.now().Sub(emc.startTime).Seconds(),
	}
	for k, v := range emc.errorsByType {
		snapshot.ErrorsByType[k] = v
	}
	for k, v := range emc.errorsByCode {
		snapshot.ErrorsByCode[k] = v
	}
	for k, v := range emc.errorsByEndpoint {
		snapshot.ErrorsByEndpoint[k] = v
	}
	copy(snapshot.TimeBuckets, emc.errorsByMinute)
	copy(snapshot.LastErrors, emc.lastErrors)

	if len(emc.errorsByMinute) > 0 {
		var total int64
		for _, bucket := range emc.errorsByMinute {
			total += bucket.Count
		}
		snapshot.ErrorsPerMinute = float64(total) / float64(len(emc.errorsByMinute))
	}
	return snapshot
}

// Reset сбрасывает все метрики
func (emc *ErrorMetricsCollector) Reset() {
	emc.mu.Lock()
	defer emc.mu.Unlock()
	emc.reset()
}

func (emc *ErrorMetricsCollector) reset() {
	emc.totalErrors = 0
	emc.errorsByType = make(map[string]int64)
	emc.errorsByCode = make(map[int]int64)
	emc.errorsByEndpoint = make(map[string]int64)
	emc.errorsByMinute = nil
	emc.lastErrors = nil
	emc.startTime = emc.now()
}
