package model

import "time"

type RunStatus string

const (
	StatusPending     RunStatus = "pending"
	StatusSubmitted   RunStatus = "submitted"
	StatusWaiting     RunStatus = "waiting"
	StatusDownloading RunStatus = "downloading"
	StatusDone        RunStatus = "done"
	StatusError       RunStatus = "error"
)

// ImageRef identifies one artifact named in a finished job's history entry.
// Subfolder and Type may be empty and are passed through verbatim as /view
// query parameters.
type ImageRef struct {
	Filename  string `json:"filename"`
	Subfolder string `json:"subfolder"`
	Type      string `json:"type"`
}

// SavedArtifact is a downloaded artifact on the local filesystem.
type SavedArtifact struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Run tracks a single workflow execution from submission to download.
type Run struct {
	ID        string         `json:"id"`
	Workflow  string         `json:"workflow"`
	JobID     string         `json:"job_id,omitempty"`
	Status    RunStatus      `json:"status"`
	Artifact  *SavedArtifact `json:"artifact,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
