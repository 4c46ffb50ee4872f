// Package signal recovers a flat numeric waveform sequence from uploaded
// text payloads. Each supported format has an ordered list of parsing
// strategies; the first strategy that yields data wins, and only exhaustion
// of all strategies is reported to the caller.
package signal

import "fmt"

// Format identifies the declared payload format. The set is closed; anything
// else is rejected before parsing.
type Format string

const (
	// FormatCSV is delimited tabular text.
	FormatCSV Format = "csv"
	// FormatTXT is free-form line-oriented numeric text.
	FormatTXT Format = "txt"
	// FormatJSON is a structured JSON document.
	FormatJSON Format = "json"
	// FormatAPN is timestamp-prefixed sample lines, one sample per line.
	FormatAPN Format = "apn"
)

// SupportedFormats lists the accepted format tags in display order.
var SupportedFormats = []string{"csv", "txt", "json", "apn"}

// ParseFormat validates a format tag (typically a file extension).
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatTXT, FormatJSON, FormatAPN:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported format %q: allowed formats are csv, txt, json, apn", s)
}
