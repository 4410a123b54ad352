package model

import "time"

// HealthStatus represents the health check status
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// PollStatus is a snapshot of the most recent poll cycle, exposed through
// the status endpoint.
type PollStatus struct {
	CycleID      string            `json:"cycle_id"`
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
	Repositories int               `json:"repositories"`
	Changed      int               `json:"changed"`
	Failed       int               `json:"failed"`
	Errors       map[string]string `json:"errors,omitempty"`
}
