package monitor

import (
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// SystemStats is a point-in-time view of the running process, the
// counterpart of the per-task counters below.
type SystemStats struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb"`
	Threads    int     `json:"threads"`
}

// Snapshot is the full metrics view handed back to callers. Values holds
// the free-form named metrics (timings, last_task, ...).
type Snapshot struct {
	Uptime       float64        `json:"uptime"`
	Timestamp    float64        `json:"timestamp"`
	TotalTasks   int            `json:"total_tasks"`
	SuccessCount int            `json:"success_count"`
	FailureCount int            `json:"failure_count"`
	SuccessRate  float64        `json:"success_rate"`
	System       SystemStats    `json:"system"`
	Values       map[string]any `json:"values"`
}

// Recorder accumulates task outcomes and named metrics for one process.
// It is owned by whoever constructs it and passed down explicitly; there
// is no package-level instance. Mutations are mutex-guarded so embedding
// in a concurrent caller stays safe, though the orchestrator itself runs
// one task at a time.
type Recorder struct {
	mu           sync.Mutex
	start        time.Time
	values       map[string]any
	taskCount    int
	successCount int
	failureCount int

	proc *process.Process
}

func NewRecorder() *Recorder {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &Recorder{
		start:  time.Now(),
		values: make(map[string]any),
		proc:   proc,
	}
}

// RecordMetric stores value under name, replacing any previous value.
func (r *Recorder) RecordMetric(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[name] = value
}

// RecordTaskResult counts one finished orchestration cycle.
func (r *Recorder) RecordTaskResult(success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskCount++
	if success {
		r.successCount++
	} else {
		r.failureCount++
	}
}

// Timer starts a scoped timing for one orchestration step. The returned
// stop function records the elapsed time under "<name>_duration_ms".
func (r *Recorder) Timer(name string) func() {
	start := time.Now()
	return func() {
		r.RecordMetric(name+"_duration_ms", time.Since(start).Milliseconds())
	}
}

// SuccessRate returns the percentage of successful tasks, 0 when none ran.
func (r *Recorder) SuccessRate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.successRateLocked()
}

func (r *Recorder) successRateLocked() float64 {
	if r.taskCount == 0 {
		return 0
	}
	return float64(r.successCount) / float64(r.taskCount) * 100
}

// Snapshot copies the current counters and named metrics and samples the
// process stats.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	values := make(map[string]any, len(r.values))
	for k, v := range r.values {
		values[k] = v
	}
	now := time.Now()
	snap := Snapshot{
		Uptime:       now.Sub(r.start).Seconds(),
		Timestamp:    float64(now.UnixNano()) / float64(time.Second),
		TotalTasks:   r.taskCount,
		SuccessCount: r.successCount,
		FailureCount: r.failureCount,
		SuccessRate:  r.successRateLocked(),
		Values:       values,
	}
	r.mu.Unlock()

	snap.System = r.systemStats()
	return snap
}

func (r *Recorder) systemStats() SystemStats {
	if r.proc == nil {
		return SystemStats{}
	}
	var stats SystemStats
	if cpu, err := r.proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	if mem, err := r.proc.MemoryInfo(); err == nil && mem != nil {
		stats.MemoryMB = float64(mem.RSS) / 1024 / 1024
	}
	if threads, err := r.proc.NumThreads(); err == nil {
		stats.Threads = int(threads)
	}
	return stats
}
