package models

import "github.com/google/uuid"

// UploadStatus tracks a queued upload job's lifecycle.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
)

// UploadJob is a client-local queue entry: a file waiting to be uploaded
// plus its progress. Jobs are bookkeeping only and never round-trip
// through the server.
type UploadJob struct {
	ID       string
	Path     string
	Meta     CreateMaterial
	Status   UploadStatus
	Progress int
	Err      string
}

// NewUploadJob creates a pending job for the given file path.
func NewUploadJob(path string, meta CreateMaterial) *UploadJob {
	return &UploadJob{
		ID:     uuid.NewString(),
		Path:   path,
		Meta:   meta,
		Status: UploadPending,
	}
}
