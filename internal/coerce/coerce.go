// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package coerce turns raw query-string values into typed values.
//
// Every function is total: it receives the raw value as `any` and returns
// either the coerced value or the original input unchanged. Unchanged input is
// left for the stricter per-field validation to reject with a descriptive
// error, so nothing in this package ever fails.
package coerce

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SortDirection is the ordering direction of a [SortDescriptor].
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortDescriptor is the coerced form of a sort string such as "-date".
type SortDescriptor struct {
	Field     string
	Direction SortDirection
}

var digits = regexp.MustCompile(`^\d+$`)

// Bool maps "", "true" and "1" to true and "false", "0" to false.
func Bool(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	switch s {
	case "", "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return v
	}
}

// Int parses a string made only of decimal digits.
// Values that overflow int are returned unchanged.
func Int(v any) any {
	s, ok := v.(string)
	if !ok || !digits.MatchString(s) {
		return v
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return v
	}

	return n
}

// StringList splits a string on commas and trims every segment.
func StringList(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// Sort parses "-field" as descending and "+field" or "field" as ascending.
func Sort(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	switch {
	case strings.HasPrefix(s, "-"):
		return SortDescriptor{Field: s[1:], Direction: Desc}
	case strings.HasPrefix(s, "+"):
		return SortDescriptor{Field: s[1:], Direction: Asc}
	default:
		return SortDescriptor{Field: s, Direction: Asc}
	}
}

// Each applies fn to every element of a []string, leaving other input untouched.
func Each(v any, fn func(any) any) any {
	list, ok := v.([]string)
	if !ok {
		return fn(v)
	}

	out := make([]any, len(list))
	for i, item := range list {
		out[i] = fn(item)
	}

	return out
}

// First reduces a repeated query value to a single one; the last occurrence wins.
func First(v any) any {
	list, ok := v.([]string)
	if !ok {
		return v
	}
	if len(list) == 0 {
		return nil
	}

	return list[len(list)-1]
}

// isoTimestamp accepts YYYY-MM-DDTHH:MM:SS with optional fractional seconds and a
// mandatory Z or ±HH:MM offset. Day ranges are checked separately in validDate.
var isoTimestamp = regexp.MustCompile(
	`^(\d{4})-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])T([01]\d|2[0-3]):([0-5]\d):([0-5]\d)(\.\d+)?(Z|[+-](?:[01]\d|2[0-3]):[0-5]\d)$`,
)

// Date parses a strict ISO-8601 timestamp into a time.Time.
func Date(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	m := isoTimestamp.FindStringSubmatch(s)
	if m == nil {
		return v
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if !validDate(year, month, day) {
		return v
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return v
	}

	return t
}

func validDate(year, month, day int) bool {
	switch month {
	case 4, 6, 9, 11:
		return day <= 30
	case 2:
		if isLeap(year) {
			return day <= 29
		}
		return day <= 28
	default:
		return day <= 31
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
