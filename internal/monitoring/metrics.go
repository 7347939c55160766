package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds server counters exposed on the health endpoint.
type Metrics struct {
	RequestCount         int64
	ErrorCount           int64
	SubmissionsAccepted  int64
	SubmissionsRejected  int64
	AverageResponseTime  int64 // nanoseconds
	StartTime            time.Time
	RequestCountByStatus map[int]int64
	statusMutex          sync.RWMutex

	rejectionsByReason map[string]int64
	rejectionMutex     sync.RWMutex
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		RequestCountByStatus: make(map[int]int64),
		rejectionsByReason:   make(map[string]int64),
	}
}

// IncrementRequest increments the request count.
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count.
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// RecordSubmissionAccepted counts one persisted application.
func (m *Metrics) RecordSubmissionAccepted() {
	atomic.AddInt64(&m.SubmissionsAccepted, 1)
}

// RecordSubmissionRejected counts one rejected application by reason.
func (m *Metrics) RecordSubmissionRejected(reason string) {
	atomic.AddInt64(&m.SubmissionsRejected, 1)
	m.rejectionMutex.Lock()
	m.rejectionsByReason[reason]++
	m.rejectionMutex.Unlock()
}

// RecordResponseTime folds duration into the running average.
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	current := atomic.LoadInt64(&m.AverageResponseTime)
	newAverage := (current + duration.Nanoseconds()) / 2
	atomic.StoreInt64(&m.AverageResponseTime, newAverage)
}

// RecordRequestByStatus records request count by HTTP status code.
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.statusMutex.Lock()
	defer m.statusMutex.Unlock()
	m.RequestCountByStatus[statusCode]++
}

// GetStats returns a snapshot for the health endpoint.
func (m *Metrics) GetStats() map[string]interface{} {
	m.statusMutex.RLock()
	byStatus := make(map[int]int64, len(m.RequestCountByStatus))
	for code, count := range m.RequestCountByStatus {
		byStatus[code] = count
	}
	m.statusMutex.RUnlock()

	m.rejectionMutex.RLock()
	byReason := make(map[string]int64, len(m.rejectionsByReason))
	for reason, count := range m.rejectionsByReason {
		byReason[reason] = count
	}
	m.rejectionMutex.RUnlock()

	return map[string]interface{}{
		"request_count":        atomic.LoadInt64(&m.RequestCount),
		"error_count":          atomic.LoadInt64(&m.ErrorCount),
		"submissions_accepted": atomic.LoadInt64(&m.SubmissionsAccepted),
		"submissions_rejected": atomic.LoadInt64(&m.SubmissionsRejected),
		"rejections_by_reason": byReason,
		"requests_by_status":   byStatus,
		"avg_response_time_ms": float64(atomic.LoadInt64(&m.AverageResponseTime)) / 1e6,
		"uptime_seconds":       int64(time.Since(m.StartTime).Seconds()),
	}
}
