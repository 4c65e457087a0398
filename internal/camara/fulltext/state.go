// Package fulltext downloads, extracts and tokenizes the full text (inteiro teor) of propositions.
package fulltext

import (
	"fmt"
	"sort"
	"strings"
)

// State is where a proposition ended after one resolution attempt.
type State int

const (
	NotAttempted State = iota
	Resolved
	SkippedNoLink
	Quarantined
	// DownloadFailed leaves the proposition untouched; a later sweep may retry it.
	DownloadFailed
)

func (s State) String() string {
	switch s {
	case NotAttempted:
		return "not_attempted"
	case Resolved:
		return "resolved"
	case SkippedNoLink:
		return "skipped_no_link"
	case Quarantined:
		return "quarantined"
	case DownloadFailed:
		return "download_failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Summary counts the states reached during a sweep.
type Summary map[State]int

func (s Summary) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

func (s Summary) String() string {
	states := make([]State, 0, len(s))
	for st := range s {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	parts := make([]string, 0, len(states))
	for _, st := range states {
		parts = append(parts, fmt.Sprintf("%s=%d", st, s[st]))
	}
	return strings.Join(parts, " ")
}
