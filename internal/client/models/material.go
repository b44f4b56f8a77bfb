// Package models defines the wire types exchanged with the materials API
// and the client-local bookkeeping types built on top of them.
//
// The server is authoritative for every entity here: the client never
// constructs identifiers, it only mirrors server copies.
package models

import (
	"errors"
	"time"
)

// MaterialType classifies a material kind.
type MaterialType string

const (
	MaterialTypeImage    MaterialType = "image"
	MaterialTypeVector   MaterialType = "vector"
	MaterialTypeVideo    MaterialType = "video"
	MaterialTypeAudio    MaterialType = "audio"
	MaterialTypeTemplate MaterialType = "template"
	MaterialTypeFont     MaterialType = "font"
	MaterialTypeOther    MaterialType = "other"
)

// LicenseType classifies how a material may be used.
type LicenseType string

const (
	LicenseFree    LicenseType = "free"
	LicensePremium LicenseType = "premium"
	LicenseCCBY    LicenseType = "cc-by"
	LicenseCCBYSA  LicenseType = "cc-by-sa"
)

// MaterialStatus is the moderation state of a material.
type MaterialStatus string

const (
	StatusDraft    MaterialStatus = "draft"
	StatusPending  MaterialStatus = "pending"
	StatusApproved MaterialStatus = "approved"
	StatusRejected MaterialStatus = "rejected"
)

var ErrMissingID = errors.New("response entity has no id")

// Material is a digital asset record as served by the backend.
type Material struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Slug            string         `json:"slug"`
	MaterialType    MaterialType   `json:"material_type"`
	MainFile        string         `json:"main_file"`
	Thumbnail       string         `json:"thumbnail,omitempty"`
	PreviewImage    string         `json:"preview_image,omitempty"`
	FileSize        int64          `json:"file_size"`
	FileSizeDisplay string         `json:"file_size_display,omitempty"`
	Dimensions      string         `json:"dimensions,omitempty"`
	Duration        float64        `json:"duration,omitempty"`
	Category        *Category      `json:"category,omitempty"`
	Tags            []Tag          `json:"tags"`
	Author          *User          `json:"author,omitempty"`
	Price           float64        `json:"price"`
	LicenseType     LicenseType    `json:"license_type"`
	ViewCount       int64          `json:"view_count"`
	DownloadCount   int64          `json:"download_count"`
	LikeCount       int64          `json:"like_count"`
	FavoriteCount   int64          `json:"favorite_count"`
	IsFavorite      bool           `json:"is_favorite"`
	IsFeatured      bool           `json:"is_featured"`
	Status          MaterialStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
}

// Validate rejects payloads that are structurally JSON but not a material.
// The id is the only field the client depends on unconditionally.
func (m *Material) Validate() error {
	if m.ID == 0 {
		return ErrMissingID
	}
	return nil
}

// Category is a material grouping; categories form a tree via Parent.
type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	Parent        *Category `json:"parent,omitempty"`
	Icon          string    `json:"icon,omitempty"`
	IsActive      bool      `json:"is_active"`
	MaterialCount int64     `json:"material_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Tag is a free-form material label.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMaterial carries the metadata fields of a multipart material create.
// The file itself is attached separately as the "main_file" part.
type CreateMaterial struct {
	Title        string
	Description  string
	MaterialType MaterialType
	Category     string
	Tags         []string
	LicenseType  LicenseType
	Price        float64
}

// DownloadResponse is returned by the record-download endpoint.
type DownloadResponse struct {
	DownloadURL   string `json:"download_url"`
	DownloadCount int64  `json:"download_count,omitempty"`
}
