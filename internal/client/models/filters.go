package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Filters holds list-query criteria. Zero values mean "not set" and are
// stripped before transmission.
type Filters struct {
	Category     string
	Tags         []string
	MaterialType string
	LicenseType  string
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	IsFeatured   *bool
	Ordering     string
}

// Merge overlays non-zero fields of other onto a copy of f.
// Pointer fields are replaced when set in other.
func (f Filters) Merge(other Filters) Filters {
	merged := f
	if other.Category != "" {
		merged.Category = other.Category
	}
	if other.Tags != nil {
		merged.Tags = other.Tags
	}
	if other.MaterialType != "" {
		merged.MaterialType = other.MaterialType
	}
	if other.LicenseType != "" {
		merged.LicenseType = other.LicenseType
	}
	if other.Search != "" {
		merged.Search = other.Search
	}
	if other.MinPrice != nil {
		merged.MinPrice = other.MinPrice
	}
	if other.MaxPrice != nil {
		merged.MaxPrice = other.MaxPrice
	}
	if other.IsFeatured != nil {
		merged.IsFeatured = other.IsFeatured
	}
	if other.Ordering != "" {
		merged.Ordering = other.Ordering
	}
	return merged
}

// Values builds the outgoing query parameters for a list request.
// Empty strings, nil pointers, and empty tag lists are absent from the
// result; tags are joined with commas the way the backend filter expects.
func (f Filters) Values(page int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))

	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if len(f.Tags) > 0 {
		v.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.MaterialType != "" {
		v.Set("material_type", f.MaterialType)
	}
	if f.LicenseType != "" {
		v.Set("license_type", f.LicenseType)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.MinPrice != nil {
		v.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		v.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.IsFeatured != nil {
		v.Set("is_featured", strconv.FormatBool(*f.IsFeatured))
	}
	if f.Ordering != "" {
		v.Set("ordering", f.Ordering)
	}
	return v
}

// Pagination tracks the list view position. Total is the server-reported
// item count, not a page count.
type Pagination struct {
	Current  int
	Total    int64
	PageSize int
}
