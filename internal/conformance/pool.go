// Package conformance runs a battery of assemble-then-simulate programs
// concurrently and checks each one's final architectural state against
// an expectation, the way a test suite validates a toolchain release.
package conformance

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/uflarisc/ufla-risc/internal/asm"
	"github.com/uflarisc/ufla-risc/internal/cpu"
	"github.com/uflarisc/ufla-risc/internal/isa"
	"github.com/uflarisc/ufla-risc/internal/mem"
	"github.com/uflarisc/ufla-risc/internal/sim"
)

// Case is one conformance program: source to assemble, a cycle budget,
// and a check run against the halted scheduler.
type Case struct {
	Name      string
	Source    string
	MaxCycles int
	Check     func(*sim.Scheduler) error
}

// CaseResult records the outcome of running a single Case.
type CaseResult struct {
	Name string
	Err  error
}

// DefaultWorkers mirrors the teacher's worker-pool sizing convention:
// fall back to every available core when the caller doesn't pick a count.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// Pool runs Cases concurrently across a fixed worker count, the way
// the teacher's search pool fans candidate checks out across cores.
type Pool struct {
	NumWorkers int

	mu      sync.Mutex
	results []CaseResult
	passed  atomic.Int64
	failed  atomic.Int64

	// fingerprints dedupes cases that assemble to the identical word
	// sequence (e.g. two scenarios that only differ in name): the
	// second occurrence reuses the first's verdict instead of
	// re-simulating, keyed by a PackWord-framed digest of the program.
	fingerprints map[string]error
	deduped      atomic.Int64
}

// NewPool creates a pool with numWorkers goroutines; numWorkers <= 0
// falls back to DefaultWorkers.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers()
	}
	return &Pool{NumWorkers: numWorkers, fingerprints: make(map[string]error)}
}

// Stats returns how many cases passed and failed so far.
func (p *Pool) Stats() (passed, failed int64) {
	return p.passed.Load(), p.failed.Load()
}

// Deduped reports how many cases were skipped because an
// already-executed case produced the identical instruction stream.
func (p *Pool) Deduped() int64 {
	return p.deduped.Load()
}

// fingerprint packs words through isa.PackWord's big-endian wire form
// and concatenates them into a single dedup key. Only the words go into
// the key, not the addresses they are placed at.
func fingerprint(words []uint32) string {
	b := make([]byte, 0, len(words)*4)
	for _, w := range words {
		packed := isa.PackWord(w)
		b = append(b, packed[:]...)
	}
	return string(b)
}

// Run assembles and simulates every case, numWorkers at a time, and
// returns one CaseResult per case (order not guaranteed).
func (p *Pool) Run(cases []Case) []CaseResult {
	ch := make(chan Case, len(cases))
	for _, c := range cases {
		ch <- c
	}
	close(ch)

	var wg sync.WaitGroup
	for i := 0; i < p.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range ch {
				res := p.runCase(c)
				p.mu.Lock()
				p.results = append(p.results, res)
				p.mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return p.results
}

func (p *Pool) runCase(c Case) CaseResult {
	asmResult, err := asm.Assemble(strings.NewReader(c.Source))
	if err != nil {
		p.failed.Add(1)
		return CaseResult{Name: c.Name, Err: fmt.Errorf("assemble: %w", err)}
	}

	key := fingerprint(asmResult.Words)
	p.mu.Lock()
	cached, ok := p.fingerprints[key]
	p.mu.Unlock()
	if ok {
		p.deduped.Add(1)
		if cached != nil {
			p.failed.Add(1)
		} else {
			p.passed.Add(1)
		}
		return CaseResult{Name: c.Name, Err: cached}
	}

	m := mem.New()
	for i, w := range asmResult.Words {
		m.Write(asmResult.Addresses[i], w)
	}
	s := sim.New(&cpu.State{}, m)

	maxCycles := c.MaxCycles
	if maxCycles <= 0 {
		maxCycles = 100000
	}
	s.Run(maxCycles)

	checkErr := c.Check(s)

	p.mu.Lock()
	p.fingerprints[key] = checkErr
	p.mu.Unlock()

	if checkErr != nil {
		p.failed.Add(1)
		return CaseResult{Name: c.Name, Err: checkErr}
	}
	p.passed.Add(1)
	return CaseResult{Name: c.Name, Err: nil}
}
