package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics collects coordinator counters. A nil *Metrics is valid and records
// nothing, so components can be built without one in tests.
type Metrics struct {
	// Stream metrics
	recordsReceived   atomic.Int64
	recordsDispatched atomic.Int64
	recordsDropped    atomic.Int64
	decodeFailures    atomic.Int64
	reconnects        atomic.Int64

	// Ledger metrics
	submissionsOK       atomic.Int64
	submissionsFailed   atomic.Int64
	registrationsOK     atomic.Int64
	registrationsFailed atomic.Int64
	submitLatencySum    atomic.Int64
	submitLatencyCount  atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) IncrementRecordsReceived() {
	if m != nil {
		m.recordsReceived.Add(1)
	}
}

func (m *Metrics) IncrementRecordsDispatched() {
	if m != nil {
		m.recordsDispatched.Add(1)
	}
}

func (m *Metrics) IncrementRecordsDropped() {
	if m != nil {
		m.recordsDropped.Add(1)
	}
}

func (m *Metrics) IncrementDecodeFailures() {
	if m != nil {
		m.decodeFailures.Add(1)
	}
}

func (m *Metrics) IncrementReconnects() {
	if m != nil {
		m.reconnects.Add(1)
	}
}

func (m *Metrics) IncrementRegistrations(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.registrationsOK.Add(1)
	} else {
		m.registrationsFailed.Add(1)
	}
}

// RecordSubmission counts one submission and its latency.
func (m *Metrics) RecordSubmission(ok bool, latency time.Duration) {
	if m == nil {
		return
	}
	if ok {
		m.submissionsOK.Add(1)
	} else {
		m.submissionsFailed.Add(1)
	}
	m.submitLatencySum.Add(latency.Milliseconds())
	m.submitLatencyCount.Add(1)
}

func (m *Metrics) GetSubmitAverageLatency() float64 {
	count := m.submitLatencyCount.Load()
	if count == 0 {
		return 0
	}
	return float64(m.submitLatencySum.Load()) / float64(count)
}

func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.startTime)
}

// Snapshot represents a point-in-time snapshot of all metrics
type Snapshot struct {
	RecordsReceived   int64 `json:"records_received"`
	RecordsDispatched int64 `json:"records_dispatched"`
	RecordsDropped    int64 `json:"records_dropped"`
	DecodeFailures    int64 `json:"decode_failures"`
	Reconnects        int64 `json:"reconnects"`

	SubmissionsOK       int64   `json:"submissions_ok"`
	SubmissionsFailed   int64   `json:"submissions_failed"`
	SubmitAvgLatency    float64 `json:"submit_avg_latency_ms"`
	RegistrationsOK     int64   `json:"registrations_ok"`
	RegistrationsFailed int64   `json:"registrations_failed"`

	UptimeSeconds int64 `json:"uptime_seconds"`
	Timestamp     int64 `json:"timestamp"`
}

// GetSnapshot returns a snapshot of all current metrics
func (m *Metrics) GetSnapshot() *Snapshot {
	return &Snapshot{
		RecordsReceived:     m.recordsReceived.Load(),
		RecordsDispatched:   m.recordsDispatched.Load(),
		RecordsDropped:      m.recordsDropped.Load(),
		DecodeFailures:      m.decodeFailures.Load(),
		Reconnects:          m.reconnects.Load(),
		SubmissionsOK:       m.submissionsOK.Load(),
		SubmissionsFailed:   m.submissionsFailed.Load(),
		SubmitAvgLatency:    m.GetSubmitAverageLatency(),
		RegistrationsOK:     m.registrationsOK.Load(),
		RegistrationsFailed: m.registrationsFailed.Load(),
		UptimeSeconds:       int64(m.GetUptime().Seconds()),
		Timestamp:           time.Now().Unix(),
	}
}
