package domain

import "time"

// RunRecord summarizes one finished smoke run.
// It is written after the fact and never used to skip work.
type RunRecord struct {
	ID          string    `json:"id"`
	Target      string    `json:"target"`
	Triple      string    `json:"triple,omitzero"`
	Workspace   string    `json:"workspace"`
	Phase       Phase     `json:"phase"`
	FailedAt    Phase     `json:"failed_at,omitzero"`
	ExitCode    int       `json:"exit_code"`
	Error       string    `json:"error,omitzero"`
	HeaderHash  string    `json:"header_hash,omitzero"`
	ArchiveHash string    `json:"archive_hash,omitzero"`
	StartedAt   time.Time `json:"started_at,omitzero"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
	Steps       []Span    `json:"steps,omitempty"`
}

// Duration returns how long the run took.
func (r RunRecord) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded reports whether every step ran, regardless of the consumer's own status.
func (r RunRecord) Succeeded() bool {
	return r.Phase == PhaseDone
}
