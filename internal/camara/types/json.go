package types

import (
	"encoding/json"
	"time"
)

// propositionJSON is the persisted form; nil pointers mean "not set".
type propositionJSON struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Number             int              `json:"number"`
	Year               int              `json:"year"`
	SubmissionDate     time.Time        `json:"submission_date"`
	Summary            string           `json:"summary"`
	SummaryExplanation string           `json:"summary_explanation"`
	AuthorCount        int              `json:"author_count"`
	GenderIndicator    string           `json:"gender_indicator"`
	AgenciesWithStatus int              `json:"agencies_with_status"`
	Attachments        []AttachmentRef  `json:"attachments,omitempty"`
	Type               *PropositionType `json:"type,omitempty"`
	NumberingAgency    *NumberingAgency `json:"numbering_agency,omitempty"`
	Regime             *Regime          `json:"regime,omitempty"`
	Appreciation       *Appreciation    `json:"appreciation,omitempty"`
	Author             *Author          `json:"author,omitempty"`
	LastDispatch       *Dispatch        `json:"last_dispatch,omitempty"`
	Status             *Status          `json:"status,omitempty"`
	Topic              *string          `json:"topic,omitempty"`
	FullTextLink       *string          `json:"full_text_link,omitempty"`
	Keywords           *[]string        `json:"keywords,omitempty"`
	FullText           *[]string        `json:"full_text,omitempty"`
}

func (p *Proposition) MarshalJSON() ([]byte, error) {
	return json.Marshal(propositionJSON{
		ID:                 p.ID,
		Name:               p.Name,
		Number:             p.Number,
		Year:               p.Year,
		SubmissionDate:     p.SubmissionDate,
		Summary:            p.Summary,
		SummaryExplanation: p.SummaryExplanation,
		AuthorCount:        p.AuthorCount,
		GenderIndicator:    p.GenderIndicator,
		AgenciesWithStatus: p.AgenciesWithStatus,
		Attachments:        p.Attachments,
		Type:               p.propType,
		NumberingAgency:    p.numberingAgency,
		Regime:             p.regime,
		Appreciation:       p.appreciation,
		Author:             p.author,
		LastDispatch:       p.lastDispatch,
		Status:             p.status,
		Topic:              p.topic,
		FullTextLink:       p.fullTextLink,
		Keywords:           p.keywords,
		FullText:           p.fullText,
	})
}

func (p *Proposition) UnmarshalJSON(data []byte) error {
	var raw propositionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Proposition{
		ID:                 raw.ID,
		Name:               raw.Name,
		Number:             raw.Number,
		Year:               raw.Year,
		SubmissionDate:     raw.SubmissionDate,
		Summary:            raw.Summary,
		SummaryExplanation: raw.SummaryExplanation,
		AuthorCount:        raw.AuthorCount,
		GenderIndicator:    raw.GenderIndicator,
		AgenciesWithStatus: raw.AgenciesWithStatus,
		Attachments:        raw.Attachments,
		propType:           raw.Type,
		numberingAgency:    raw.NumberingAgency,
		regime:             raw.Regime,
		appreciation:       raw.Appreciation,
		author:             raw.Author,
		lastDispatch:       raw.LastDispatch,
		status:             raw.Status,
		topic:              raw.Topic,
		fullTextLink:       raw.FullTextLink,
		keywords:           raw.Keywords,
		fullText:           raw.FullText,
	}
	return nil
}
