package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotSet is returned when a substructure is read before it was assigned.
var ErrNotSet = errors.New("substructure not set")

func notSet(field string) error {
	return fmt.Errorf("%w: %s", ErrNotSet, field)
}

type PropositionType struct {
	ID    int64  `json:"id"`
	Sigla string `json:"sigla"`
	Name  string `json:"name"`
}

type NumberingAgency struct {
	ID    int64  `json:"id"`
	Sigla string `json:"sigla"`
	Name  string `json:"name"`
}

type Regime struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type Appreciation struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// Author is the first author (autor1) of a proposition.
type Author struct {
	Name           string `json:"name"`
	RegistrationID string `json:"registration_id"`
	PartyCode      string `json:"party_code"`
	PartySigla     string `json:"party_sigla"`
	State          string `json:"state"`
}

type Dispatch struct {
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

// StatusAgency is the agency (órgão) currently holding the proposition.
type StatusAgency struct {
	ID    int64  `json:"id"`
	Sigla string `json:"sigla"`
}

// PrincipalRef points at the proposition this one is attached to in the status agency.
type PrincipalRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Status struct {
	ID          int64         `json:"id"`
	Description string        `json:"description"`
	Agency      StatusAgency  `json:"agency"`
	Principal   *PrincipalRef `json:"principal,omitempty"`
}

// Proposition is a bill or other formal proposal. Substructures are optional until
// set and their getters return ErrNotSet before that.
type Proposition struct {
	ID                 int64
	Name               string
	Number             int
	Year               int
	SubmissionDate     time.Time
	Summary            string
	SummaryExplanation string
	AuthorCount        int
	GenderIndicator    string
	AgenciesWithStatus int

	// Attachments are candidate references discovered by the detail service.
	Attachments []AttachmentRef

	propType        *PropositionType
	numberingAgency *NumberingAgency
	regime          *Regime
	appreciation    *Appreciation
	author          *Author
	lastDispatch    *Dispatch
	status          *Status
	topic           *string
	fullTextLink    *string
	keywords        *[]string
	fullText        *[]string
}

func (p *Proposition) SetType(t PropositionType) { p.propType = &t }

func (p *Proposition) SetNumberingAgency(a NumberingAgency) { p.numberingAgency = &a }

func (p *Proposition) SetRegime(r Regime) { p.regime = &r }

func (p *Proposition) SetAppreciation(a Appreciation) { p.appreciation = &a }

func (p *Proposition) SetAuthor(a Author) { p.author = &a }

func (p *Proposition) SetLastDispatch(d Dispatch) { p.lastDispatch = &d }

func (p *Proposition) SetStatus(s Status) { p.status = &s }

func (p *Proposition) SetTopic(topic string) { p.topic = &topic }

func (p *Proposition) SetFullTextLink(link string) { p.fullTextLink = &link }

func (p *Proposition) AddAttachment(ref AttachmentRef) {
	p.Attachments = append(p.Attachments, ref)
}

func (p *Proposition) SetKeywords(keywords []string) {
	k := append([]string{}, keywords...)
	p.keywords = &k
}

// SetFullText attaches the tokenized document text.
func (p *Proposition) SetFullText(tokens []string) {
	t := append([]string{}, tokens...)
	p.fullText = &t
}

func (p *Proposition) Type() (PropositionType, error) {
	if p.propType == nil {
		return PropositionType{}, notSet("type")
	}
	return *p.propType, nil
}

func (p *Proposition) NumberingAgency() (NumberingAgency, error) {
	if p.numberingAgency == nil {
		return NumberingAgency{}, notSet("numbering agency")
	}
	return *p.numberingAgency, nil
}

func (p *Proposition) Regime() (Regime, error) {
	if p.regime == nil {
		return Regime{}, notSet("regime")
	}
	return *p.regime, nil
}

func (p *Proposition) Appreciation() (Appreciation, error) {
	if p.appreciation == nil {
		return Appreciation{}, notSet("appreciation")
	}
	return *p.appreciation, nil
}

func (p *Proposition) Author() (Author, error) {
	if p.author == nil {
		return Author{}, notSet("author")
	}
	return *p.author, nil
}

func (p *Proposition) LastDispatch() (Dispatch, error) {
	if p.lastDispatch == nil {
		return Dispatch{}, notSet("last dispatch")
	}
	return *p.lastDispatch, nil
}

func (p *Proposition) Status() (Status, error) {
	if p.status == nil {
		return Status{}, notSet("status")
	}
	return *p.status, nil
}

func (p *Proposition) Topic() (string, error) {
	if p.topic == nil {
		return "", notSet("topic")
	}
	return *p.topic, nil
}

func (p *Proposition) FullTextLink() (string, error) {
	if p.fullTextLink == nil {
		return "", notSet("full-text link")
	}
	return *p.fullTextLink, nil
}

func (p *Proposition) Keywords() ([]string, error) {
	if p.keywords == nil {
		return nil, notSet("keywords")
	}
	return append([]string(nil), (*p.keywords)...), nil
}

// FullText returns the tokenized document text and whether it was resolved.
func (p *Proposition) FullText() ([]string, bool) {
	if p.fullText == nil {
		return nil, false
	}
	return *p.fullText, true
}

func (p *Proposition) HasFullText() bool {
	return p.fullText != nil
}

// Key identifies the proposition for attachment deduplication.
func (p *Proposition) Key() (PropositionKey, error) {
	t, err := p.Type()
	if err != nil {
		return PropositionKey{}, err
	}
	return NewPropositionKey(t.Sigla, p.Number, p.Year), nil
}

func (p *Proposition) String() string {
	return fmt.Sprintf("%s (id: %d)", p.Name, p.ID)
}
