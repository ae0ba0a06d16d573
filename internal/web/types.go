package web

import "time"

// Config holds the status server settings
type Config struct {
	// Addr is the HTTP listen address (default ":8080")
	Addr string
}

// Service status values
const (
	StatusWaiting = "waiting"
	StatusRunning = "running"
	StatusStopped = "stopped"
	StatusFailed  = "failed"
)

// Step values describe where the current pass is
const (
	StepIdle        = "idle"
	StepCategory    = "category"
	StepDescription = "description"
	StepName        = "name"
	StepSubmitting  = "submitting"
)

// StateSnapshot is the JSON body of GET /api/state
type StateSnapshot struct {
	Status    string      `json:"status"`
	StartedAt *time.Time  `json:"started_at,omitempty"`
	Device    DeviceState `json:"device"`

	Pass uint64 `json:"pass"`
	Step string `json:"step"`

	Summary    StateSummary `json:"summary"`
	LastReport *ReportState `json:"last_report,omitempty"`
	LastError  string       `json:"last_error,omitempty"`
}

// DeviceState is the identity captured at service start
type DeviceState struct {
	Serial   string `json:"serial,omitempty"`
	Software string `json:"software,omitempty"`
	IP       string `json:"ip,omitempty"`
}

// StateSummary counts sequences and deliveries since start
type StateSummary struct {
	Started    int `json:"started"`
	Abandoned  int `json:"abandoned"`
	Rejected   int `json:"rejected"`
	Unresolved int `json:"unresolved"`
	Delivered  int `json:"delivered"`
	Failed     int `json:"failed"`
}

// ReportState follows the most recent report through delivery
type ReportState struct {
	ID     string    `json:"id"`
	Campus string    `json:"campus,omitempty"`
	Room   string    `json:"room,omitempty"`
	Status string    `json:"status"` // sending, delivered, failed
	Sender string    `json:"sender,omitempty"`
	Error  string    `json:"error,omitempty"`
	Time   time.Time `json:"time"`
}
