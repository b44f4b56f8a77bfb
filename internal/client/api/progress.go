package api

import (
	"io"
	"math"
	"sync"
)

// ProgressEvent carries the byte counters observed during an upload.
// Fraction is a library-supplied 0..1 value, or a negative number when
// no such value is available.
type ProgressEvent struct {
	Loaded   int64
	Total    int64
	Fraction float64
}

const bytesPerMiB = 1024 * 1024

// Progress converts a ProgressEvent into a 0-100 percentage using three
// fallback strategies in priority order:
//  1. exact loaded/total ratio when the total is known and positive,
//  2. the supplied fractional progress value,
//  3. a heuristic of 5% per MiB uploaded, capped at 99, which only exists
//     to avoid a division by zero when the total size is unknown
//     (chunked or streamed uploads).
func Progress(e ProgressEvent) int {
	if e.Total > 0 {
		return int(math.Round(float64(e.Loaded) * 100 / float64(e.Total)))
	}
	if e.Fraction >= 0 {
		return int(math.Round(e.Fraction * 100))
	}
	mib := float64(e.Loaded) / bytesPerMiB
	return int(math.Min(math.Round(mib*5), 99))
}

// progressReader counts bytes flowing through an io.Reader and reports
// monotonically non-decreasing percentages to the callback.
type progressReader struct {
	r      io.Reader
	total  int64
	onProg ProgressFunc

	mu     sync.Mutex
	loaded int64
	last   int
}

func newProgressReader(r io.Reader, total int64, onProg ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, onProg: onProg, last: -1}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.onProg != nil {
		p.mu.Lock()
		p.loaded += int64(n)
		percent := Progress(ProgressEvent{Loaded: p.loaded, Total: p.total, Fraction: -1})
		report := percent > p.last
		if report {
			p.last = percent
		}
		p.mu.Unlock()

		if report {
			p.onProg(percent)
		}
	}
	return n, err
}
