package sweep

import (
	"sync"
	"time"
)

type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "success"
	ExecutionError   ExecutionStatus = "error"
)

// UnitAlertDetail lists, for one missing unit, who was notified and who was
// skipped by preference. A recipient appears in at most one of the two lists.
type UnitAlertDetail struct {
	UnitId        int      `json:"unit_id"`
	UnitCode      string   `json:"unit_code"`
	UnitName      string   `json:"unit_name"`
	NotifiedUsers []string `json:"notified_users"`
	SkippedUsers  []string `json:"skipped_users"`
}

// ExecutionRecord is the single record a sweep run produces: success with
// totals and per-unit detail, or error with the causal message and no detail.
type ExecutionRecord struct {
	ID            string            `json:"id"`
	Job           string            `json:"job"`
	ExecutedAt    time.Time         `json:"executed_at"`
	Status        ExecutionStatus   `json:"status"`
	Message       string            `json:"message"`
	AlertsSent    int               `json:"alerts_sent"`
	AlertsSkipped int               `json:"alerts_skipped"`
	Details       []UnitAlertDetail `json:"details,omitempty"`
}

// ExecutionLog is the in-process, append-only run history. Appends are
// all-or-nothing per record and safe under concurrent use; snapshots never
// observe a partially appended entry. No durability across restarts.
type ExecutionLog struct {
	mu      sync.Mutex
	records []ExecutionRecord
}

func NewExecutionLog() *ExecutionLog {
	return &ExecutionLog{}
}

func (l *ExecutionLog) Record(rec ExecutionRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
}

// Snapshot returns a defensive copy of every record in insertion order.
func (l *ExecutionLog) Snapshot() []ExecutionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ExecutionRecord, len(l.records))
	copy(out, l.records)
	for i := range out {
		if len(out[i].Details) == 0 {
			continue
		}
		details := make([]UnitAlertDetail, len(out[i].Details))
		copy(details, out[i].Details)
		for j := range details {
			details[j].NotifiedUsers = append([]string(nil), details[j].NotifiedUsers...)
			details[j].SkippedUsers = append([]string(nil), details[j].SkippedUsers...)
		}
		out[i].Details = details
	}
	return out
}
