package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var executions atomic.Int64
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			out, err, _ := g.Do("export:12345", func() (any, error) {
				executions.Add(1)
				<-release
				return "payload", nil
			})
			if err != nil {
				t.Errorf("do: %v", err)
			}
			results[idx] = out
		}(i)
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected a single execution, got %d", got)
	}
	for idx, out := range results {
		if out != "payload" {
			t.Fatalf("caller %d got %v", idx, out)
		}
	}
}

func TestSingleFlight_SequentialCallsRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var executions atomic.Int64

	for i := 0; i < 3; i++ {
		_, err, shared := g.Do("history:alice", func() (any, error) {
			executions.Add(1)
			return nil, nil
		})
		if err != nil {
			t.Fatalf("do %d: %v", i, err)
		}
		if shared {
			t.Fatalf("call %d unexpectedly shared", i)
		}
	}

	if got := executions.Load(); got != 3 {
		t.Fatalf("expected three executions, got %d", got)
	}
}
