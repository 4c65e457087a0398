package types

import (
	"fmt"
	"strings"
	"time"
)

// PropositionKey identifies a proposition across listings: type sigla, number and year.
type PropositionKey struct {
	Sigla  string `json:"sigla"`
	Number int    `json:"number"`
	Year   int    `json:"year"`
}

func NewPropositionKey(sigla string, number, year int) PropositionKey {
	return PropositionKey{
		Sigla:  strings.ToUpper(strings.TrimSpace(sigla)),
		Number: number,
		Year:   year,
	}
}

func (k PropositionKey) String() string {
	return fmt.Sprintf("%s %d/%d", k.Sigla, k.Number, k.Year)
}

// BatchKey addresses one persisted batch.
type BatchKey struct {
	Sigla           string `json:"sigla"`
	Year            int    `json:"year"`
	WithAttachments bool   `json:"with_attachments"`
}

func NewBatchKey(sigla string, year int, withAttachments bool) BatchKey {
	return BatchKey{
		Sigla:           strings.ToUpper(strings.TrimSpace(sigla)),
		Year:            year,
		WithAttachments: withAttachments,
	}
}

func (k BatchKey) String() string {
	return fmt.Sprintf("%s_%d_apens_%t", k.Sigla, k.Year, k.WithAttachments)
}

// Batch is every proposition of one type in one year, plus the keys seen while building it.
type Batch struct {
	Key          BatchKey         `json:"key"`
	Propositions []*Proposition   `json:"propositions"`
	Seen         []PropositionKey `json:"seen"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Find returns the proposition with the given id, or nil.
func (b *Batch) Find(id int64) *Proposition {
	for _, p := range b.Propositions {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// SeenSet tracks the propositions already materialized while building one batch.
// Insertion order is kept so the batch can persist it. The zero value is empty and ready to use.
type SeenSet struct {
	order []PropositionKey
	index map[PropositionKey]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{index: make(map[PropositionKey]struct{})}
}

// Add reports whether k was not already present.
func (s *SeenSet) Add(k PropositionKey) bool {
	if _, ok := s.index[k]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[PropositionKey]struct{})
	}
	s.index[k] = struct{}{}
	s.order = append(s.order, k)
	return true
}

func (s *SeenSet) Contains(k PropositionKey) bool {
	_, ok := s.index[k]
	return ok
}

func (s *SeenSet) Len() int {
	return len(s.order)
}

func (s *SeenSet) Keys() []PropositionKey {
	return append([]PropositionKey(nil), s.order...)
}
