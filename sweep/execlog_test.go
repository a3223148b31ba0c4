package sweep

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestExecutionLog_ConcurrentAppends(t *testing.T) {
	l := NewExecutionLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Record(ExecutionRecord{
				ID:         fmt.Sprintf("run-%d", i),
				Job:        JobFirstAlert,
				ExecutedAt: time.Now(),
				Status:     ExecutionSuccess,
			})
		}(i)
	}
	wg.Wait()

	if got := len(l.Snapshot()); got != 50 {
		t.Fatalf("expected 50 records, got %d", got)
	}
}

func TestExecutionLog_SnapshotIsDefensiveCopy(t *testing.T) {
	l := NewExecutionLog()
	l.Record(ExecutionRecord{
		ID:     "run-1",
		Job:    JobEscalation,
		Status: ExecutionSuccess,
		Details: []UnitAlertDetail{
			{UnitId: 1, NotifiedUsers: []string{"aye@stationlog.test"}},
		},
	})

	snap := l.Snapshot()
	snap[0].Message = "mutated"
	snap[0].Details[0] = UnitAlertDetail{UnitId: 99}

	fresh := l.Snapshot()
	if fresh[0].Message == "mutated" {
		t.Fatal("snapshot mutation leaked into the log")
	}
	if fresh[0].Details[0].UnitId != 1 {
		t.Fatal("snapshot detail mutation leaked into the log")
	}
}

func TestExecutionLog_InsertionOrder(t *testing.T) {
	l := NewExecutionLog()
	for i := 0; i < 5; i++ {
		l.Record(ExecutionRecord{ID: fmt.Sprintf("run-%d", i)})
	}
	snap := l.Snapshot()
	for i, rec := range snap {
		if rec.ID != fmt.Sprintf("run-%d", i) {
			t.Fatalf("records out of insertion order at %d: %s", i, rec.ID)
		}
	}
}
