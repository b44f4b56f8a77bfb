package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// progressBar renders a fixed-width terminal progress bar driven by 0-100
// percentage updates. Safe for concurrent use; the transfer goroutine
// updates it while the command goroutine owns the terminal.
type progressBar struct {
	mu     sync.Mutex
	writer io.Writer
	prefix string
	width  int
	last   int
}

func newProgressBar(w io.Writer, prefix string) *progressBar {
	return &progressBar{writer: w, prefix: prefix, width: 40, last: -1}
}

// Update redraws the bar for the given percentage. Repeated values are not
// redrawn to keep the output calm on slow terminals.
func (pb *progressBar) Update(percent int) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent == pb.last {
		return
	}
	pb.last = percent

	filled := pb.width * percent / 100
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled)
	fmt.Fprintf(pb.writer, "\r%s [%s] %3d%%", pb.prefix, bar, percent)
}

// Finish completes the bar and moves to the next line.
func (pb *progressBar) Finish() {
	pb.Update(100)
	pb.mu.Lock()
	defer pb.mu.Unlock()
	fmt.Fprintln(pb.writer)
}
