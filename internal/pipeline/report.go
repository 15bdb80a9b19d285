// internal/pipeline/report.go
package pipeline

import (
	"time"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// State names a stage of the per-category pipeline.
type State string

const (
	StateInit      State = "INIT"
	StateFetch     State = "FETCH"
	StateExtract   State = "EXTRACT"
	StateNormalize State = "NORMALIZE"
	StateValidate  State = "VALIDATE"
	StateDedupe    State = "DEDUPE"
	StateDiff      State = "DIFF"
	StateBackup    State = "BACKUP"
	StatePersist   State = "PERSIST"
	StateDone      State = "DONE"
	StateFailed    State = "FAILED"
)

// CategoryReport summarizes one category's run.
type CategoryReport struct {
	Category hardware.Category `json:"category"`

	// State is DONE on success; FAILED otherwise, with FailedAt naming the
	// stage that aborted the run.
	State    State  `json:"state"`
	FailedAt State  `json:"failedAt,omitempty"`
	Error    string `json:"error,omitempty"`

	// Records is the size of the persisted dataset.
	Records  int  `json:"records"`
	UsedMock bool `json:"usedMock"`

	// Sources counts persisted records by provenance tag.
	Sources map[string]int `json:"sources,omitempty"`

	Diff     hardware.DiffResult `json:"diff"`
	Duration string              `json:"duration"`
}

// Succeeded reports whether the category completed its run.
func (r CategoryReport) Succeeded() bool { return r.State == StateDone }

// RunReport aggregates every category of one harvester run.
type RunReport struct {
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Categories []CategoryReport `json:"categories"`
}

// Failed reports whether any category ended in FAILED.
func (r RunReport) Failed() bool {
	for _, c := range r.Categories {
		if !c.Succeeded() {
			return true
		}
	}
	return false
}
