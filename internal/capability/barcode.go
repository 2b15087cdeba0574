// Package capability defines the narrow contracts for the platform
// capabilities the client consumes: barcode scanning, photo capture
// and user feedback. Each capability ships an available variant and a
// fallback/unavailable variant, selected once at startup.
package capability

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Scanner obtains a barcode. ok=false means "no result": the user
// cancelled or the capability is unavailable.
type Scanner interface {
	Scan(ctx context.Context) (code string, ok bool, err error)
}

// UnavailableScanner always reports no result.
type UnavailableScanner struct{}

// Scan implements Scanner.
func (UnavailableScanner) Scan(context.Context) (string, bool, error) {
	return "", false, nil
}

// LineScanner reads one line from an input stream and normalizes it.
// It stands in for a hardware scanner in the terminal client.
type LineScanner struct {
	In io.Reader
}

// Scan implements Scanner. An empty line means the user cancelled.
func (s *LineScanner) Scan(context.Context) (string, bool, error) {
	r := bufio.NewReader(s.In)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", false, nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false, nil
	}
	return NormalizeBarcode(line), true, nil
}

// NormalizeBarcode extracts a usable code from raw scanner output.
// The fallback order is fixed: prefer the first run of 12 to 14
// digits, then the longest digit run, then the text after the last
// colon, then the trimmed input as-is.
func NormalizeBarcode(raw string) string {
	trimmed := strings.TrimSpace(raw)

	runs := digitRuns(trimmed)
	for _, run := range runs {
		if len(run) >= 12 && len(run) <= 14 {
			return run
		}
	}
	longest := ""
	for _, run := range runs {
		if len(run) > len(longest) {
			longest = run
		}
	}
	if longest != "" {
		return longest
	}
	if i := strings.LastIndex(trimmed, ":"); i >= 0 {
		return strings.TrimSpace(trimmed[i+1:])
	}
	return trimmed
}

// digitRuns returns the maximal consecutive digit substrings of s in
// order of appearance.
func digitRuns(s string) []string {
	var runs []string
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, s[start:])
	}
	return runs
}
