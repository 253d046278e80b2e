package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Whitespace marks input split on runs of blanks rather than a single rune.
const Whitespace = ' '

var delimiterCandidates = []rune{',', '\t', ';', '|', ' '}

const sniffMaxLines = 20

// SniffDelimiter guesses the field separator from a sample of the file.
// A candidate is plausible when it splits most sampled lines into the same
// number of fields. The first plausible candidate in preference order wins;
// blanks only count when nothing else is plausible, so "a, b" stays a comma
// file.
func SniffDelimiter(sample []byte, path string) rune {
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return fallbackDelimiter(path)
	}
	for _, c := range delimiterCandidates {
		if _, ok := consistentCount(lines, c); ok {
			if c == ' ' {
				return Whitespace
			}
			return c
		}
	}
	return fallbackDelimiter(path)
}

func fallbackDelimiter(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv":
		return '\t'
	case ".dat":
		return Whitespace
	default:
		return ','
	}
}

func sampleLines(sample []byte) []string {
	sample = bytes.TrimPrefix(sample, []byte("\ufeff"))
	raw := strings.Split(strings.ReplaceAll(string(sample), "\r\n", "\n"), "\n")
	// the sample may cut the last line short
	if len(raw) > 2 && !bytes.HasSuffix(sample, []byte("\n")) {
		raw = raw[:len(raw)-1]
	}
	out := make([]string, 0, sniffMaxLines)
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
		if len(out) == sniffMaxLines {
			break
		}
	}
	return out
}

// consistentCount returns the modal field-separator count for c and whether
// that count is non-zero and shared by at least 80% of lines.
func consistentCount(lines []string, c rune) (int, bool) {
	freq := make(map[int]int)
	for _, l := range lines {
		var n int
		if c == ' ' {
			n = len(strings.Fields(l)) - 1
		} else {
			n = countOutsideQuotes(l, c)
		}
		freq[n]++
	}
	mode, modeFreq := 0, 0
	for n, f := range freq {
		if f > modeFreq || (f == modeFreq && n > mode) {
			mode, modeFreq = n, f
		}
	}
	if mode == 0 {
		return 0, false
	}
	return mode, modeFreq*5 >= len(lines)*4
}

func countOutsideQuotes(line string, c rune) int {
	n := 0
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == c && !quoted:
			n++
		}
	}
	return n
}
