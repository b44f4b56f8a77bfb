// Package formatx contains formatting and validation helpers used by the CLI
// when rendering materials and validating user input.
package formatx

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FileSize renders a byte count as a human-readable string using 1024-based
// units with up to two decimal places, e.g. 1536 -> "1.5 KB".
// Negative sizes render as "invalid size".
func FileSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	if bytes < 0 {
		return "invalid size"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	v := float64(bytes) / math.Pow(1024, float64(i))
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + " " + sizeUnits[i]
}

var dateTokens = strings.NewReplacer(
	"YYYY", "2006",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// Date formats t according to a template using YYYY/MM/DD/HH/mm/ss tokens,
// e.g. "YYYY-MM-DD HH:mm". A zero time renders as "invalid date".
func Date(t time.Time, format string) string {
	if t.IsZero() {
		return "invalid date"
	}
	return t.Format(dateTokens.Replace(format))
}

// Truncate shortens s to at most length runes, appending suffix when
// truncation happened.
func Truncate(s string, length int, suffix string) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length]) + suffix
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidURL reports whether s is an absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
