package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/msivanov/materialhub/internal/client/api"
	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/logging"
)

const defaultPageSize = 12

// MaterialStore mirrors the material catalog: the current page of results,
// the selected material, categories, tags, filters, and pagination.
type MaterialStore struct {
	client api.Client
	log    logging.Logger

	// rollback reverts optimistic counter mutations when the backing
	// call fails. Off by default: the historical behavior is
	// fire-and-forget.
	rollback bool
	pageSize int

	mu         sync.Mutex
	loading    bool
	materials  []models.Material
	current    *models.Material
	categories []models.Category
	tags       []models.Tag
	filters    models.Filters
	pagination models.Pagination
	lastError  string
}

// MaterialStoreConfig configures a MaterialStore.
type MaterialStoreConfig struct {
	Client api.Client
	Logger logging.Logger
	// PageSize defaults to 12.
	PageSize int
	// RollbackOnFailure enables compensation for optimistic mutations.
	RollbackOnFailure bool
}

func NewMaterialStore(cfg MaterialStoreConfig) *MaterialStore {
	pageSize := cfg.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	return &MaterialStore{
		client:     cfg.Client,
		log:        cfg.Logger,
		rollback:   cfg.RollbackOnFailure,
		pageSize:   pageSize,
		pagination: models.Pagination{Current: 1, PageSize: pageSize},
	}
}

// beginFetch acquires the single in-flight fetch slot.
func (s *MaterialStore) beginFetch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrOperationInProgress
	}
	s.loading = true
	s.lastError = ""
	return nil
}

func (s *MaterialStore) endFetch() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// List fetches one page of materials using the current filters. The whole
// in-memory list is replaced with the server's page; pagination is updated
// from the reported count.
func (s *MaterialStore) List(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	if err := s.beginFetch(); err != nil {
		return err
	}
	defer s.endFetch()

	s.mu.Lock()
	filters := s.filters
	s.mu.Unlock()

	resp, err := s.client.ListMaterials(ctx, filters, page)
	if err != nil {
		s.setError(userMessage(err, "failed to fetch materials"))
		return fmt.Errorf("list materials: %w", err)
	}

	s.mu.Lock()
	s.materials = resp.Results
	s.pagination = models.Pagination{Current: page, Total: resp.Count, PageSize: s.pageSize}
	s.mu.Unlock()
	return nil
}

// FetchDetail loads a single material and makes it current.
func (s *MaterialStore) FetchDetail(ctx context.Context, id int64) (*models.Material, error) {
	if err := s.beginFetch(); err != nil {
		return nil, err
	}
	defer s.endFetch()

	m, err := s.client.GetMaterial(ctx, id)
	if err != nil {
		s.setError(userMessage(err, "failed to fetch material"))
		return nil, fmt.Errorf("fetch material %d: %w", id, err)
	}

	s.mu.Lock()
	s.current = m
	s.mu.Unlock()
	return m, nil
}

// Add registers a freshly created material at the head of the list and
// bumps the total, the way the upload flow updates the catalog view.
func (s *MaterialStore) Add(m *models.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials = append([]models.Material{*m}, s.materials...)
	s.pagination.Total++
}

// ToggleFavorite optimistically flips the favorite flag and adjusts the
// counter on the listed and current copies before the network call
// resolves. On failure the mutation stays unless rollback is enabled.
func (s *MaterialStore) ToggleFavorite(ctx context.Context, id int64) error {
	s.applyFavorite(id)

	err := s.client.FavoriteMaterial(ctx, id)
	if err != nil {
		if s.rollback {
			s.applyFavorite(id)
		}
		s.setError(userMessage(err, "favorite failed"))
		return fmt.Errorf("favorite material %d: %w", id, err)
	}
	return nil
}

func (s *MaterialStore) applyFavorite(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.materials {
		if s.materials[i].ID == id {
			flip(&s.materials[i])
		}
	}
	if s.current != nil && s.current.ID == id {
		flip(s.current)
	}
}

func flip(m *models.Material) {
	m.IsFavorite = !m.IsFavorite
	if m.IsFavorite {
		m.FavoriteCount++
	} else {
		m.FavoriteCount--
	}
}

// RecordDownload optimistically bumps the download counter and asks the
// server for the download URL.
func (s *MaterialStore) RecordDownload(ctx context.Context, id int64) (*models.DownloadResponse, error) {
	s.applyDownload(id, 1)

	resp, err := s.client.RecordDownload(ctx, id)
	if err != nil {
		if s.rollback {
			s.applyDownload(id, -1)
		}
		s.setError(userMessage(err, "download failed"))
		return nil, fmt.Errorf("record download %d: %w", id, err)
	}
	return resp, nil
}

func (s *MaterialStore) applyDownload(id int64, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.materials {
		if s.materials[i].ID == id {
			s.materials[i].DownloadCount += delta
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current.DownloadCount += delta
	}
}

// UpdateFilters overlays the given criteria and resets pagination to the
// first page.
func (s *MaterialStore) UpdateFilters(f models.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Merge(f)
	s.pagination.Current = 1
}

// ClearFilters resets all criteria and returns to the first page.
func (s *MaterialStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = models.Filters{}
	s.pagination.Current = 1
}

// FetchCategories loads the category list.
func (s *MaterialStore) FetchCategories(ctx context.Context) error {
	cats, err := s.client.ListCategories(ctx)
	if err != nil {
		s.setError(userMessage(err, "failed to fetch categories"))
		return fmt.Errorf("list categories: %w", err)
	}
	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	return nil
}

// FetchTags loads the tag list.
func (s *MaterialStore) FetchTags(ctx context.Context) error {
	tags, err := s.client.ListTags(ctx)
	if err != nil {
		s.setError(userMessage(err, "failed to fetch tags"))
		return fmt.Errorf("list tags: %w", err)
	}
	s.mu.Lock()
	s.tags = tags
	s.mu.Unlock()
	return nil
}

func (s *MaterialStore) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	if s.log != nil {
		s.log.Error(context.Background(), "material store error", "msg", msg)
	}
}

// ClearError resets the last user-facing error message.
func (s *MaterialStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// Materials returns a copy of the current page.
func (s *MaterialStore) Materials() []models.Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Material, len(s.materials))
	copy(out, s.materials)
	return out
}

// Current returns a copy of the selected material, or nil.
func (s *MaterialStore) Current() *models.Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

func (s *MaterialStore) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *MaterialStore) Tags() []models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s *MaterialStore) Filters() models.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *MaterialStore) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *MaterialStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *MaterialStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
