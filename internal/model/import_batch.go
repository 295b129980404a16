package model

import "time"

// Import batch states.
const (
	ImportProcessing = "processing"
	ImportCompleted  = "completed"
	ImportFailed     = "failed"
)

// ImportBatch records one uploaded CSV file and the outcome of importing it.
// The original file is archived in object storage under StoragePath.
type ImportBatch struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	StoragePath  string    `json:"storage_path"`
	Size         int64     `json:"size"`
	Status       string    `json:"status"`
	LeadCount    int       `json:"lead_count"`
	ErrorMessage *string   `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}
