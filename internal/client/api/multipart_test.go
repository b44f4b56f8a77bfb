package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msivanov/materialhub/internal/client/models"
)

func TestHTTPClient_CreateMaterial(t *testing.T) {
	fileContent := bytes.Repeat([]byte("p"), 4096)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "sunset", r.FormValue("title"))
		require.Equal(t, "image", r.FormValue("material_type"))
		require.Equal(t, "free", r.FormValue("license_type"))
		require.Equal(t, "nature,sky", r.FormValue("tags"))

		f, header, err := r.FormFile("main_file")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "sunset.jpg", header.Filename)

		got, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, fileContent, got)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Material{ID: 101, Title: "sunset"})
	})

	c := newTestClient(t, handler, &fakeTokens{access: "tok"}, nil)

	var lastProgress int
	m, err := c.CreateMaterial(context.Background(),
		models.CreateMaterial{
			Title:        "sunset",
			MaterialType: models.MaterialTypeImage,
			LicenseType:  models.LicenseFree,
			Tags:         []string{"nature", "sky"},
		},
		"sunset.jpg", bytes.NewReader(fileContent), int64(len(fileContent)),
		func(p int) { lastProgress = p },
	)
	require.NoError(t, err)
	require.EqualValues(t, 101, m.ID)
	require.Equal(t, 100, lastProgress)
}

func TestHTTPClient_CreateMaterial_401NoRetry(t *testing.T) {
	var requests int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &fakeTokens{access: "stale"}
	var redirected bool
	c := newTestClient(t, handler, tokens, func() { redirected = true })

	_, err := c.CreateMaterial(context.Background(),
		models.CreateMaterial{Title: "x", MaterialType: models.MaterialTypeOther, LicenseType: models.LicenseFree},
		"x.bin", bytes.NewReader([]byte("data")), 4, nil)

	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, 1, requests, "stream bodies cannot be replayed")
	require.True(t, redirected)
}
