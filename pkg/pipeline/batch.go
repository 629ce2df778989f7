package pipeline

import (
	"sync"
	"sync/atomic"

	"github.com/pzverkov/pqc-container/pkg/primitive"
)

// BatchStats collects counters for a batch run. All fields use atomic
// operations so workers can update them without a shared lock.
type BatchStats struct {
	succeeded atomic.Uint64
	failed    atomic.Uint64
}

// Succeeded returns how many jobs completed without error.
func (s *BatchStats) Succeeded() uint64 { return s.succeeded.Load() }

// Failed returns how many jobs returned an error.
func (s *BatchStats) Failed() uint64 { return s.failed.Load() }

// EncryptJob is one unit of work for BatchEncrypt: a plaintext keyed by an
// arbitrary caller-supplied identifier (typically a file path).
type EncryptJob struct {
	ID        string
	Plaintext []byte
}

// EncryptJobResult pairs a job's identifier with its outcome.
type EncryptJobResult struct {
	ID        string
	Container []byte
	Err       error
}

// BatchEncrypt runs Encrypt over every job using a fixed-size worker pool,
// the per-file parallelism the core itself deliberately leaves to callers
// (the core has no notion of a batch or a connection to share across jobs).
// Results are returned in the same order as jobs; workers process jobs
// concurrently but write each result to its own slot.
func BatchEncrypt(jobs []EncryptJob, recipientPublic *primitive.KEMPublicKey, opts EncryptOptions, workers int) ([]EncryptJobResult, *BatchStats) {
	if workers < 1 {
		workers = 1
	}

	results := make([]EncryptJobResult, len(jobs))
	stats := &BatchStats{}

	jobCh := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobCh {
				job := jobs[i]
				ct, err := Encrypt(job.Plaintext, recipientPublic, opts)
				if err != nil {
					stats.failed.Add(1)
				} else {
					stats.succeeded.Add(1)
				}
				results[i] = EncryptJobResult{ID: job.ID, Container: ct, Err: err}
			}
		}()
	}

	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	return results, stats
}
