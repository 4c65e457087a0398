package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate accepts the web services' dd/mm/yyyy (optionally with time) and yyyy-mm-dd.
func ParseDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}
	}
	for _, layout := range []string{"02/01/2006", "02/01/2006 15:04:05", "02/01/2006 15:04", "2006-01-02", "2006-01-02T15:04:05"} {
		t, err := time.Parse(layout, dateStr)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}

func ParseInt64(valStr string) int64 {
	valStr = strings.TrimSpace(valStr)
	if valStr == "" {
		return 0
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

func ParseInt(valStr string) int {
	return int(ParseInt64(valStr))
}

func ParseBool(valStr string) bool {
	valStr = strings.TrimSpace(valStr)
	return strings.EqualFold(valStr, "Sim") || strings.EqualFold(valStr, "Yes") ||
		strings.EqualFold(valStr, "True") || valStr == "1"
}

// SplitList splits a comma-separated field, trimming items and dropping empty ones.
func SplitList(valStr string) []string {
	parts := strings.Split(valStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
