package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestFilters_Values_StripsEmpty(t *testing.T) {
	f := Filters{Category: "", Tags: []string{}, Search: "cat"}
	v := f.Values(1)

	require.Equal(t, "cat", v.Get("search"))
	require.Equal(t, "1", v.Get("page"))
	require.Len(t, v, 2, "only search and page may be present, got %v", v)
}

func TestFilters_Values_AllFields(t *testing.T) {
	featured := true
	f := Filters{
		Category:     "icons",
		Tags:         []string{"flat", "ui"},
		MaterialType: "vector",
		LicenseType:  "free",
		Search:       "arrow",
		MinPrice:     f64(0),
		MaxPrice:     f64(9.5),
		IsFeatured:   &featured,
		Ordering:     "-created_at",
	}
	v := f.Values(3)

	require.Equal(t, "3", v.Get("page"))
	require.Equal(t, "icons", v.Get("category"))
	require.Equal(t, "flat,ui", v.Get("tags"))
	require.Equal(t, "vector", v.Get("material_type"))
	require.Equal(t, "free", v.Get("license_type"))
	require.Equal(t, "arrow", v.Get("search"))
	require.Equal(t, "0", v.Get("min_price"))
	require.Equal(t, "9.5", v.Get("max_price"))
	require.Equal(t, "true", v.Get("is_featured"))
	require.Equal(t, "-created_at", v.Get("ordering"))
}

func TestFilters_Merge(t *testing.T) {
	base := Filters{Category: "icons", Search: "arrow"}
	merged := base.Merge(Filters{Search: "circle", Tags: []string{"ui"}})

	require.Equal(t, "icons", merged.Category)
	require.Equal(t, "circle", merged.Search)
	require.Equal(t, []string{"ui"}, merged.Tags)

	// base is unchanged
	require.Equal(t, "arrow", base.Search)
}

func TestMaterial_Validate(t *testing.T) {
	m := &Material{}
	require.ErrorIs(t, m.Validate(), ErrMissingID)

	m.ID = 42
	require.NoError(t, m.Validate())
}
