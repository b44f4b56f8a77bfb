package stores

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/msivanov/materialhub/internal/client/api"
	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
)

// UploadStore tracks a single in-flight upload's progress plus a local
// queue of pending file entries. Queue entries are client bookkeeping only
// and are not transmitted until explicitly uploaded.
type UploadStore struct {
	client   api.Client
	catalog  *MaterialStore
	log      logging.Logger
	attempts uint64
	delay    time.Duration

	mu        sync.Mutex
	uploading bool
	progress  int
	queue     []*models.UploadJob
	uploaded  []models.Material
}

// UploadStoreConfig configures an UploadStore. Catalog is optional; when
// set, finished uploads are inserted into the material list.
type UploadStoreConfig struct {
	Client  api.Client
	Catalog *MaterialStore
	Logger  logging.Logger
	// RetryAttempts is the total number of tries per queued job (default 3).
	RetryAttempts uint64
	// RetryDelay is the constant pause between tries (default 1s).
	RetryDelay time.Duration
}

func NewUploadStore(cfg UploadStoreConfig) *UploadStore {
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = defaultRetryAttempts
	}
	delay := cfg.RetryDelay
	if delay == 0 {
		delay = defaultRetryDelay
	}
	return &UploadStore{
		client:   cfg.Client,
		catalog:  cfg.Catalog,
		log:      cfg.Logger,
		attempts: attempts,
		delay:    delay,
	}
}

// Upload sends one file immediately. The shared progress value mirrors the
// transfer; onProgress (optional) additionally receives every update.
// The uploading flag and progress are reset regardless of the outcome.
func (s *UploadStore) Upload(ctx context.Context, path string, meta models.CreateMaterial, onProgress api.ProgressFunc) (*models.Material, error) {
	s.mu.Lock()
	if s.uploading {
		s.mu.Unlock()
		return nil, ErrOperationInProgress
	}
	s.uploading = true
	s.progress = 0
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.progress = 0
		s.mu.Unlock()
	}()

	return s.send(ctx, path, meta, onProgress)
}

// send performs the actual transfer without touching the uploading flag.
func (s *UploadStore) send(ctx context.Context, path string, meta models.CreateMaterial, onProgress api.ProgressFunc) (*models.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	m, err := s.client.CreateMaterial(ctx, meta, filepath.Base(path), f, size, func(p int) {
		s.setProgress(p)
		if onProgress != nil {
			onProgress(p)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}

	s.mu.Lock()
	s.uploaded = append(s.uploaded, *m)
	s.mu.Unlock()

	if s.catalog != nil {
		s.catalog.Add(m)
	}
	return m, nil
}

// setProgress only moves the shared value forward; a late or duplicate
// callback cannot make the displayed progress go backwards.
func (s *UploadStore) setProgress(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p > s.progress {
		s.progress = p
	}
}

// Enqueue adds a pending job for later processing and returns it.
func (s *UploadStore) Enqueue(path string, meta models.CreateMaterial) *models.UploadJob {
	job := models.NewUploadJob(path, meta)
	s.mu.Lock()
	s.queue = append(s.queue, job)
	s.mu.Unlock()
	return job
}

// ProcessQueue uploads every pending job in order, retrying transient
// failures with constant backoff. Job status moves
// pending -> uploading -> success|error; terminal states are never
// revisited within one call.
func (s *UploadStore) ProcessQueue(ctx context.Context) error {
	s.mu.Lock()
	if s.uploading {
		s.mu.Unlock()
		return ErrOperationInProgress
	}
	s.uploading = true
	jobs := make([]*models.UploadJob, len(s.queue))
	copy(jobs, s.queue)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.progress = 0
		s.mu.Unlock()
	}()

	var firstErr error
	for _, job := range jobs {
		if job.Status != models.UploadPending {
			continue
		}
		s.setJob(job, models.UploadUploading, "")
		s.mu.Lock()
		s.progress = 0
		s.mu.Unlock()

		backoff := retry.WithMaxRetries(s.attempts-1, retry.NewConstant(s.delay))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			_, err := s.send(ctx, job.Path, job.Meta, func(p int) { s.setJobProgress(job, p) })
			if err == nil {
				return nil
			}
			// Only transport-level failures are worth retrying; a
			// validation or permission error will not change.
			if errors.Is(err, api.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		})

		if err != nil {
			s.setJob(job, models.UploadError, err.Error())
			if s.log != nil {
				s.log.Error(ctx, "queued upload failed", "job", job.ID, "path", job.Path, "err", err)
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.setJobProgress(job, 100)
		s.setJob(job, models.UploadSuccess, "")
	}
	return firstErr
}

// setJobProgress mirrors setProgress for a queued job. The HTTP client may
// deliver progress callbacks from the request-body goroutine after the
// response has already arrived, so job progress takes the same lock as
// every other mutation and only moves forward.
func (s *UploadStore) setJobProgress(job *models.UploadJob, p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p > job.Progress {
		job.Progress = p
	}
}

func (s *UploadStore) setJob(job *models.UploadJob, status models.UploadStatus, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.Status = status
	job.Err = errMsg
}

// Queue returns a snapshot of the queue.
func (s *UploadStore) Queue() []models.UploadJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UploadJob, 0, len(s.queue))
	for _, j := range s.queue {
		out = append(out, *j)
	}
	return out
}

// ClearQueue drops all queued jobs.
func (s *UploadStore) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
}

// Uploaded returns the materials created during this session.
func (s *UploadStore) Uploaded() []models.Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Material, len(s.uploaded))
	copy(out, s.uploaded)
	return out
}

// ClearUploaded forgets the uploaded-materials history.
func (s *UploadStore) ClearUploaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded = nil
}

func (s *UploadStore) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *UploadStore) IsUploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}
