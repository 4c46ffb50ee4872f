package signal

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ParseError reports that no numeric data could be recovered from a payload.
// Individual strategy failures are swallowed; this error means every strategy
// for the declared format was exhausted.
type ParseError struct {
	Format Format
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not extract signal data from %s payload: %s", e.Format, e.Reason)
}

// Column header keywords that identify the waveform column, in priority
// order, matched case-insensitively as substrings.
var headerKeywords = []string{"ecg", "ekg", "signal", "voltage", "amplitude", "value"}

// Keys searched for the waveform array in JSON payloads.
var (
	recordKeys = []string{"ecg", "signal", "value", "amplitude", "voltage"}
	objectKeys = []string{"ecg", "signal", "data", "values", "amplitudes", "voltages"}
)

// Parse recovers a numeric sequence from raw payload bytes under the declared
// format. The returned slice always has at least one sample; a payload from
// which nothing numeric can be extracted yields a *ParseError.
func Parse(data []byte, format Format) ([]float64, error) {
	content := string(data)

	var seq []float64
	var err error
	switch format {
	case FormatCSV:
		seq = parseDelimited(content)
	case FormatTXT:
		seq = parseLines(content)
	case FormatJSON:
		seq, err = parseStructured(content)
		if err != nil {
			return nil, err
		}
	case FormatAPN:
		seq = parseTagged(content)
	default:
		return nil, &ParseError{Format: format, Reason: "unsupported format"}
	}

	if len(seq) == 0 {
		return nil, &ParseError{Format: format, Reason: "no numeric samples found"}
	}
	return seq, nil
}

// parseFinite parses a token as a finite float. NaN and infinities are
// rejected so they never reach the detector.
func parseFinite(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// nonEmptyLines splits content into trimmed lines, dropping blank ones.
func nonEmptyLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseDelimited tries each field delimiter in priority order, accepting the
// first one that yields a well-formed table with an extractable column. When
// no delimiter works the payload is retried as free-form numeric lines.
func parseDelimited(content string) []float64 {
	for _, delim := range []string{",", ";", "\t", " "} {
		if seq := extractColumn(content, delim); len(seq) > 0 {
			return seq
		}
	}
	return parseLines(content)
}

// extractColumn parses content as a table under one delimiter and pulls the
// waveform column. Returns nil when the table is malformed or the extraction
// comes up empty.
func extractColumn(content, delim string) []float64 {
	lines := nonEmptyLines(content)
	if len(lines) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(lines))
	width := -1
	for _, line := range lines {
		var fields []string
		if delim == " " {
			fields = strings.Fields(line)
		} else {
			fields = strings.Split(line, delim)
		}
		if width == -1 {
			width = len(fields)
		} else if len(fields) != width {
			// Ragged rows under this delimiter; not a table.
			return nil
		}
		rows = append(rows, fields)
	}

	// A leading row of non-numeric fields is treated as the header. A fully
	// numeric first row is data, so headerless payloads keep their first
	// sample.
	var header []string
	data := rows
	if !rowNumeric(rows[0]) {
		header = rows[0]
		data = rows[1:]
	}
	if len(data) == 0 {
		return nil
	}

	col := chooseColumn(header, data, width)
	var seq []float64
	for _, row := range data {
		if v, ok := parseFinite(row[col]); ok {
			seq = append(seq, v)
		}
	}
	// A single-column table must coerce fully. Dropping entries there would
	// let the wrong delimiter swallow samples that the free-numeric fallback
	// can still recover.
	if width == 1 && len(seq) != len(data) {
		return nil
	}
	return seq
}

// chooseColumn picks the extraction column: keyword-matched header first,
// then the first all-numeric column, then column zero coerced.
func chooseColumn(header []string, data [][]string, width int) int {
	for i, h := range header {
		lower := strings.ToLower(h)
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	for i := 0; i < width; i++ {
		numeric := true
		for _, row := range data {
			if _, ok := parseFinite(row[i]); !ok {
				numeric = false
				break
			}
		}
		if numeric {
			return i
		}
	}
	return 0
}

func rowNumeric(fields []string) bool {
	for _, f := range fields {
		if _, ok := parseFinite(f); !ok {
			return false
		}
	}
	return true
}

// parseLines extracts every numeric token from non-comment lines, normalizing
// commas and tabs to whitespace. Non-numeric tokens are dropped individually;
// the rest of the line is still used.
func parseLines(content string) []float64 {
	var seq []float64
	for _, line := range nonEmptyLines(content) {
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		normalized := strings.NewReplacer(",", " ", "\t", " ").Replace(line)
		for _, tok := range strings.Fields(normalized) {
			if v, ok := parseFinite(tok); ok {
				seq = append(seq, v)
			}
		}
	}
	return seq
}

// parseStructured handles JSON payloads. Unlike the text formats, a payload
// that fails to parse as JSON is a hard failure rather than a fallback to
// free-numeric extraction.
func parseStructured(content string) ([]float64, error) {
	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &ParseError{Format: FormatJSON, Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	switch v := doc.(type) {
	case []any:
		if seq, ok := numericArray(v); ok {
			return seq, nil
		}
		// A list of keyed records: pull the first priority key present in
		// the leading record.
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				for _, key := range recordKeys {
					if _, present := first[key]; !present {
						continue
					}
					var seq []float64
					for _, item := range v {
						rec, ok := item.(map[string]any)
						if !ok {
							continue
						}
						if f, ok := rec[key].(float64); ok {
							seq = append(seq, f)
						}
					}
					if len(seq) > 0 {
						return seq, nil
					}
				}
			}
		}
	case map[string]any:
		for _, key := range objectKeys {
			if arr, ok := v[key].([]any); ok {
				if seq, ok := numericArray(arr); ok {
					return seq, nil
				}
			}
		}
		// Fall back to the first array-valued key whose elements are all
		// numeric. Keys are visited in sorted order so the choice is stable.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := v[k].([]any); ok {
				if seq, ok := numericArray(arr); ok {
					return seq, nil
				}
			}
		}
	}

	return nil, &ParseError{Format: FormatJSON, Reason: "no numeric array found in document"}
}

func numericArray(arr []any) ([]float64, bool) {
	if len(arr) == 0 {
		return nil, false
	}
	seq := make([]float64, len(arr))
	for i, item := range arr {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		seq[i] = f
	}
	return seq, true
}

// parseTagged handles the timestamp-prefixed sample convention: the last
// whitespace token of each line is the sample, or the whole line when it is
// a single token.
func parseTagged(content string) []float64 {
	var seq []float64
	for _, line := range nonEmptyLines(content) {
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if v, ok := parseFinite(fields[len(fields)-1]); ok {
			seq = append(seq, v)
		}
	}
	return seq
}
