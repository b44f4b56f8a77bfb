package formatx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{-1, "invalid size"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, FileSize(tc.bytes), "bytes=%d", tc.bytes)
	}
}

func TestDate(t *testing.T) {
	ts := time.Date(2024, 3, 9, 17, 5, 9, 0, time.UTC)
	require.Equal(t, "2024-03-09", Date(ts, "YYYY-MM-DD"))
	require.Equal(t, "2024-03-09 17:05:09", Date(ts, "YYYY-MM-DD HH:mm:ss"))
	require.Equal(t, "invalid date", Date(time.Time{}, "YYYY-MM-DD"))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "hello", Truncate("hello", 10, "..."))
	require.Equal(t, "hel...", Truncate("hello world", 3, "..."))
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("alice@example.com"))
	require.False(t, IsValidEmail("alice"))
	require.False(t, IsValidEmail("alice@com"))
	require.False(t, IsValidEmail("a b@example.com"))
}

func TestIsValidURL(t *testing.T) {
	require.True(t, IsValidURL("https://example.com/pay"))
	require.False(t, IsValidURL("not a url"))
	require.False(t, IsValidURL("/relative/path"))
}
