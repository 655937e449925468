package extraction

import (
	"time"

	"github.com/google/uuid"
)

// State is the extraction job lifecycle. Completed covers every batch that
// ran to the end, even one where all items failed; Failed is reserved for
// jobs that never got through validation or were cancelled.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// ItemResult records the outcome for one source archive.
type ItemResult struct {
	Source string
	OK     bool
	Detail string
}

// Job is one extraction run over a batch of sources.
type Job struct {
	ID          string
	State       State
	Sources     []string
	Destination string
	Options     Options
	Items       []ItemResult
	Success     int
	Failure     int
	Reason      string
	StartedAt   time.Time
	FinishedAt  time.Time
}

func newJob(sources []string, destination string, opts Options) *Job {
	return &Job{
		ID:          uuid.NewString(),
		State:       StateIdle,
		Sources:     sources,
		Destination: destination,
		Options:     opts,
		StartedAt:   time.Now().UTC(),
	}
}

func (j *Job) recordItem(source string, err error) {
	item := ItemResult{Source: source, OK: err == nil}
	if err != nil {
		item.Detail = err.Error()
		j.Failure++
	} else {
		j.Success++
	}
	j.Items = append(j.Items, item)
}

func (j *Job) finish(state State, reason string) {
	j.State = state
	j.Reason = reason
	j.FinishedAt = time.Now().UTC()
}
