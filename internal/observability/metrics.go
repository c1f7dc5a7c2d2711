package observability

import "sync"

// Metrics provides basic in-memory counters for store operations.
type Metrics struct {
	mu       sync.Mutex
	opCount  map[string]int64
	errCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		opCount:  make(map[string]int64),
		errCount: make(map[string]int64),
	}
}

// RecordOperation increments counters for one store operation.
func (m *Metrics) RecordOperation(op string, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opCount[op]++
	if err != nil {
		m.errCount[op]++
	}
}

// OperationCount returns the number of calls recorded for op.
func (m *Metrics) OperationCount(op string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opCount[op]
}

// ErrorCount returns the number of failed calls recorded for op.
func (m *Metrics) ErrorCount(op string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errCount[op]
}
