package conformance

import "testing"

func TestDefaultCasesAllPass(t *testing.T) {
	p := NewPool(DefaultWorkers())
	results := p.Run(DefaultCases())
	if len(results) != len(DefaultCases()) {
		t.Fatalf("got %d results; want %d", len(results), len(DefaultCases()))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("case %s failed: %v", r.Name, r.Err)
		}
	}
	passed, failed := p.Stats()
	if failed != 0 {
		t.Errorf("failed = %d; want 0", failed)
	}
	if passed != int64(len(DefaultCases())) {
		t.Errorf("passed = %d; want %d", passed, len(DefaultCases()))
	}
}

func TestPoolReportsFailure(t *testing.T) {
	p := NewPool(1)
	cases := []Case{{
		Name:   "deliberately-wrong",
		Source: "add r1, r0, r0\nhalt\n",
		Check:  requireReg(1, 99),
	}}
	results := p.Run(cases)
	if results[0].Err == nil {
		t.Fatal("expected a failure")
	}
	_, failed := p.Stats()
	if failed != 1 {
		t.Errorf("failed = %d; want 1", failed)
	}
}

func TestNewPoolDefaultsWorkerCount(t *testing.T) {
	p := NewPool(0)
	if p.NumWorkers <= 0 {
		t.Errorf("NumWorkers = %d; want > 0", p.NumWorkers)
	}
}

func TestPoolDedupesIdenticalPrograms(t *testing.T) {
	p := NewPool(1)
	cases := []Case{
		{Name: "a", Source: "add r1, r0, r0\nhalt\n", Check: requireReg(1, 0)},
		{Name: "b-same-program", Source: "add r1, r0, r0\nhalt\n", Check: requireReg(1, 0)},
	}
	results := p.Run(cases)
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("case %s failed: %v", r.Name, r.Err)
		}
	}
	if got := p.Deduped(); got != 1 {
		t.Errorf("Deduped() = %d; want 1", got)
	}
	passed, _ := p.Stats()
	if passed != 2 {
		t.Errorf("passed = %d; want 2 (dedup still counts as a pass)", passed)
	}
}
