package util

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrFormat = errors.New("malformed number")

type FormatError struct {
	Raw    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("normalize number %q: %s", e.Raw, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

var (
	spacedGroups   = regexp.MustCompile(`^\d{1,3}(?: \d{3})+(?:[.,]\d+)?$`)
	dotThousands   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	commaThousands = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
	plainDecimal   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

	spaceFolder = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2009", " ", "\t", " ")
)

// NormalizeNumber converts a numeric token written with either decimal
// separator, and optionally with space-separated thousand groups, into a
// float. It never consults the process locale.
func NormalizeNumber(raw string) (float64, error) {
	s := strings.TrimSpace(spaceFolder.Replace(raw))
	if s == "" {
		return 0, &FormatError{Raw: raw, Reason: "empty"}
	}

	if strings.Contains(s, " ") {
		if !spacedGroups.MatchString(s) {
			return 0, &FormatError{Raw: raw, Reason: "bad digit grouping"}
		}
		s = strings.ReplaceAll(s, " ", "")
	}

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		lastComma := strings.LastIndex(s, ",")
		lastDot := strings.LastIndex(s, ".")
		if lastComma > lastDot {
			if commas != 1 || !dotThousands.MatchString(s[:lastComma]) {
				return 0, &FormatError{Raw: raw, Reason: "mixed separators"}
			}
			s = strings.ReplaceAll(s[:lastComma], ".", "") + "." + s[lastComma+1:]
		} else {
			if dots != 1 || !commaThousands.MatchString(s[:lastDot]) {
				return 0, &FormatError{Raw: raw, Reason: "mixed separators"}
			}
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas > 1:
		if !commaThousands.MatchString(s) {
			return 0, &FormatError{Raw: raw, Reason: "bad digit grouping"}
		}
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		if !dotThousands.MatchString(s) {
			return 0, &FormatError{Raw: raw, Reason: "bad digit grouping"}
		}
		s = strings.ReplaceAll(s, ".", "")
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	}

	if !plainDecimal.MatchString(s) {
		return 0, &FormatError{Raw: raw, Reason: "not a non-negative decimal"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FormatError{Raw: raw, Reason: err.Error()}
	}
	return v, nil
}

// NormalizeCount is NormalizeNumber restricted to positive whole numbers.
func NormalizeCount(raw string) (int, error) {
	v, err := NormalizeNumber(raw)
	if err != nil {
		return 0, err
	}
	if v < 1 || v != float64(int(v)) {
		return 0, &FormatError{Raw: raw, Reason: "not a positive integer"}
	}
	return int(v), nil
}
