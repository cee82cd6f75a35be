package metrics

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MetricKey identifies a benchmark series by strategy and dataset
type MetricKey struct {
	Type string // strategy, e.g. "greedy-1"
	Key  string // dataset name
}

// String returns a string representation of the MetricKey
func (k MetricKey) String() string {
	return fmt.Sprintf("%s:%s", k.Type, k.Key)
}

// NewKey creates a new MetricKey with the given strategy and dataset
func NewKey(typ, key string) MetricKey {
	return MetricKey{Type: typ, Key: key}
}

// Sample is what one run reports back
type Sample struct {
	Cover          int
	FootprintBytes uint64
}

// MetricItem aggregates the runs of one series
type MetricItem struct {
	Runs           int    `json:"runs"`
	Cover          int    `json:"cover"`
	BestNanos      int64  `json:"best_ns"`
	TotalNanos     int64  `json:"total_ns"`
	FootprintBytes uint64 `json:"footprint_bytes"`
}

// Add folds one timed run into the item. Cover and footprint are the same
// for every run of a deterministic solve, so the last value is kept.
func (m *MetricItem) Add(d time.Duration, s Sample) {
	ns := d.Nanoseconds()
	if m.Runs == 0 || ns < m.BestNanos {
		m.BestNanos = ns
	}
	m.Runs++
	m.TotalNanos += ns
	m.Cover = s.Cover
	m.FootprintBytes = s.FootprintBytes
}

// Best is the fastest run
func (m MetricItem) Best() time.Duration {
	return time.Duration(m.BestNanos)
}

// Mean is the average run time
func (m MetricItem) Mean() time.Duration {
	if m.Runs == 0 {
		return 0
	}
	return time.Duration(m.TotalNanos / int64(m.Runs))
}

// job represents a pending benchmark run
type job struct {
	typ string
	key string
	run func() (Sample, error)
}

// Recorder runs benchmark jobs on a worker pool and aggregates their timings
type Recorder struct {
	mu    sync.Mutex
	wg    sync.WaitGroup
	once  sync.Once
	jobs  chan job
	err   error
	Items map[MetricKey]MetricItem
	Timer Timer
}

// NewRecorder creates a Recorder with the given timer and worker count
func NewRecorder(timer Timer, workers int) *Recorder {
	if workers < 1 {
		workers = 1
	}
	if timer == nil {
		timer = WallTimer{}
	}

	r := &Recorder{
		jobs:  make(chan job, workers*2),
		Items: make(map[MetricKey]MetricItem),
		Timer: timer,
	}

	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.worker(r.jobs)
	}

	return r
}

func (r *Recorder) worker(jobs <-chan job) {
	defer r.wg.Done()

	for job := range jobs {
		var sample Sample
		d, err := r.Timer.Time(func() error {
			var err error
			sample, err = job.run()
			return err
		})

		r.mu.Lock()
		if err != nil {
			if r.err == nil {
				r.err = fmt.Errorf("%s:%s: %w", job.typ, job.key, err)
			}
			r.mu.Unlock()
			continue
		}
		key := MetricKey{Type: job.typ, Key: job.key}
		item := r.Items[key]
		item.Add(d, sample)
		r.Items[key] = item
		r.mu.Unlock()
	}
}

// Submit queues one run of fn under the series typ:key. It blocks while
// the queue is full.
func (r *Recorder) Submit(typ, key string, fn func() (Sample, error)) {
	r.jobs <- job{typ: typ, key: key, run: fn}
}

// Wait waits for all queued runs and returns the first run error.
// It is idempotent; no jobs may be submitted after the first call.
func (r *Recorder) Wait() error {
	r.once.Do(func() { close(r.jobs) })
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// sumByLocked returns the sum of all series for the given strategy.
// Caller **must** hold r.mu.
func (r *Recorder) sumByLocked(typeName string) MetricItem {
	var sum MetricItem
	for k, v := range r.Items {
		if k.Type == typeName {
			sum.Runs += v.Runs
			sum.Cover += v.Cover
			sum.BestNanos += v.BestNanos
			sum.TotalNanos += v.TotalNanos
			sum.FootprintBytes += v.FootprintBytes
		}
	}
	return sum
}

// SumBy totals every dataset run under the given strategy
func (r *Recorder) SumBy(typeName string) MetricItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sumByLocked(typeName)
}

// MarshalJSON marshals the series to JSON with string keys
func (r *Recorder) MarshalJSON() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[string]MetricItem, len(r.Items))
	for k, v := range r.Items {
		result[k.String()] = v
	}

	return json.Marshal(result)
}
