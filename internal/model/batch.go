package model

import "time"

// ContactState tracks a contact's progress through the per-contact sequence.
type ContactState string

const (
	StatePending    ContactState = "pending"
	StateEnriching  ContactState = "enriching"
	StateGenerating ContactState = "generating"
	StatePublishing ContactState = "publishing"
	StateDone       ContactState = "done"
	StateFailed     ContactState = "failed"
)

// ContactResult is the per-contact outcome record accumulated by the batch
// orchestrator regardless of success or failure.
type ContactResult struct {
	ContactID       string       `json:"contact_id"`
	Email           string       `json:"email,omitempty"`
	State           ContactState `json:"state"`
	TaskID          string       `json:"task_id,omitempty"`
	TrackerTaskIDs  []string     `json:"tracker_task_ids,omitempty"`
	GeneratedWithAI bool         `json:"generated_with_ai"`
	Provenance      Provenance   `json:"provenance,omitempty"`
	OwnerID         string       `json:"owner_id,omitempty"`
	Error           string       `json:"error,omitempty"`
}

// Succeeded reports whether the contact reached the Done state.
func (r ContactResult) Succeeded() bool {
	return r.State == StateDone
}

// BatchReport is the terminal report of one batch run. Partial results are
// always present: the batch never aborts because of one contact.
type BatchReport struct {
	RunID          string          `json:"run_id"`
	SegmentID      string          `json:"segment_id"`
	TotalProcessed int             `json:"total_processed"`
	Succeeded      int             `json:"succeeded"`
	Failed         int             `json:"failed"`
	Results        []ContactResult `json:"results"`
	StartedAt      time.Time       `json:"started_at"`
	FinishedAt     time.Time       `json:"finished_at"`
}
