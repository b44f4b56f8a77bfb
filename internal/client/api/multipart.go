package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/msivanov/materialhub/internal/client/models"
)

// upload POSTs a multipart form with the material metadata fields and the
// streamed "main_file" part. The request body cannot be replayed, so unlike
// do it never retries after a refresh; it refreshes the access token up
// front instead when a refresh token is available.
func (c *HTTPClient) upload(ctx context.Context, path string, meta models.CreateMaterial, filename string, file io.Reader, size int64, onProgress ProgressFunc, out any) error {
	// Refresh eagerly: a mid-stream 401 would waste the whole upload.
	if c.tokens != nil && c.tokens.AccessToken() != "" && c.tokens.RefreshToken() != "" {
		if expired, _ := tokenExpiresSoon(c.tokens.AccessToken()); expired {
			if err := c.refreshTokens(ctx); err != nil && c.log != nil {
				c.log.Warn(ctx, "eager token refresh failed", "err", err)
			}
		}
	}

	counted := newProgressReader(file, size, onProgress)

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		err := writeMaterialForm(form, meta, filename, counted)
		if cerr := form.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, pr)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return c.networkError(http.MethodPost, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		c.handleUnauthorized(path)
		return newAPIError(http.StatusUnauthorized, nil)
	}

	return c.decode(resp, path, out)
}

// writeMaterialForm emits the metadata fields and the file part in the
// order the backend serializer expects.
func writeMaterialForm(form *multipart.Writer, meta models.CreateMaterial, filename string, file io.Reader) error {
	fields := map[string]string{
		"title":         meta.Title,
		"description":   meta.Description,
		"material_type": string(meta.MaterialType),
		"category":      meta.Category,
		"license_type":  string(meta.LicenseType),
	}
	if meta.Price > 0 {
		fields["price"] = strconv.FormatFloat(meta.Price, 'f', 2, 64)
	}
	if len(meta.Tags) > 0 {
		fields["tags"] = strings.Join(meta.Tags, ",")
	}

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}

	part, err := form.CreateFormFile("main_file", filename)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	return nil
}
