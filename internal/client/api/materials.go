package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/msivanov/materialhub/internal/client/models"
)

func (c *HTTPClient) ListMaterials(ctx context.Context, filters models.Filters, page int) (*models.Paginated[models.Material], error) {
	var resp models.Paginated[models.Material]
	if err := c.do(ctx, http.MethodGet, "/api/materials/", filters.Values(page), nil, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Results {
		if err := resp.Results[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: result %d: %w", ErrMalformedResponse, i, err)
		}
	}
	return &resp, nil
}

func (c *HTTPClient) GetMaterial(ctx context.Context, id int64) (*models.Material, error) {
	var m models.Material
	path := fmt.Sprintf("/api/materials/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &m, nil
}

// CreateMaterial uploads a new material as multipart form data, streaming
// the file and reporting progress via onProgress. Pass size <= 0 when the
// total is unknown; progress then falls back to the per-MiB heuristic.
func (c *HTTPClient) CreateMaterial(ctx context.Context, meta models.CreateMaterial, filename string, file io.Reader, size int64, onProgress ProgressFunc) (*models.Material, error) {
	var m models.Material
	if err := c.upload(ctx, "/api/materials/", meta, filename, file, size, onProgress, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &m, nil
}

func (c *HTTPClient) FavoriteMaterial(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/materials/%d/favorite/", id)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

func (c *HTTPClient) RecordDownload(ctx context.Context, id int64) (*models.DownloadResponse, error) {
	var resp models.DownloadResponse
	path := fmt.Sprintf("/api/materials/%d/download/", id)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.DownloadURL == "" {
		return nil, fmt.Errorf("%w: download response missing url", ErrMalformedResponse)
	}
	return &resp, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories/", nil, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *HTTPClient) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := c.do(ctx, http.MethodGet, "/api/tags/", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
