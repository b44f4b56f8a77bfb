package api

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgress_ExactRatio(t *testing.T) {
	tests := []struct {
		loaded, total int64
		want          int
	}{
		{0, 100, 0},
		{50, 100, 50},
		{100, 100, 100},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, tc := range tests {
		got := Progress(ProgressEvent{Loaded: tc.loaded, Total: tc.total, Fraction: -1})
		require.Equal(t, tc.want, got, "loaded=%d total=%d", tc.loaded, tc.total)
	}
}

func TestProgress_FractionFallback(t *testing.T) {
	got := Progress(ProgressEvent{Loaded: 10, Total: 0, Fraction: 0.42})
	require.Equal(t, 42, got)
}

func TestProgress_HeuristicFallback(t *testing.T) {
	// 5% per MiB, capped at 99.
	require.Equal(t, 5, Progress(ProgressEvent{Loaded: bytesPerMiB, Fraction: -1}))
	require.Equal(t, 50, Progress(ProgressEvent{Loaded: 10 * bytesPerMiB, Fraction: -1}))
	require.Equal(t, 99, Progress(ProgressEvent{Loaded: 1000 * bytesPerMiB, Fraction: -1}))
}

func TestProgressReader_MonotonicAndComplete(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 10_000)
	var reported []int
	pr := newProgressReader(bytes.NewReader(data), int64(len(data)), func(p int) {
		reported = append(reported, p)
	})

	_, err := io.CopyBuffer(io.Discard, pr, make([]byte, 512))
	require.NoError(t, err)

	require.NotEmpty(t, reported)
	for i := 1; i < len(reported); i++ {
		require.GreaterOrEqual(t, reported[i], reported[i-1], "progress must not decrease")
	}
	require.Equal(t, 100, reported[len(reported)-1])
}

func TestProgressReader_NilCallback(t *testing.T) {
	pr := newProgressReader(bytes.NewReader([]byte("abc")), 3, nil)
	_, err := io.ReadAll(pr)
	require.NoError(t, err)
}
