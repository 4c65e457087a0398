// Package converter maps SitCamaraWS listing entries onto propositions.
package converter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/camara/utils"
	"github.com/farxc/envelopa-camara/internal/camara/webservice"
	"github.com/farxc/envelopa-camara/internal/logger"
)

var ErrSchemaViolation = errors.New("listing entry does not match the expected schema")

// SchemaError names the first mandatory element missing from a listing entry.
type SchemaError struct {
	EntryID string
	Missing string
}

func (e *SchemaError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("%v: missing <%s>", ErrSchemaViolation, e.Missing)
	}
	return fmt.Sprintf("%v: proposition %s is missing <%s>", ErrSchemaViolation, e.EntryID, e.Missing)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaViolation
}

// DetailFetcher retrieves the per-proposition detail document.
type DetailFetcher interface {
	PropositionDetail(ctx context.Context, id int64) (*webservice.Detail, error)
}

type Converter struct {
	details   DetailFetcher
	appLogger *logger.Logger
}

func New(details DetailFetcher, appLogger *logger.Logger) *Converter {
	if appLogger == nil {
		appLogger = logger.Discard()
	}
	return &Converter{details: details, appLogger: appLogger}
}

// ToProposition maps one listing entry and completes it with exactly one
// detail request for topic, full-text link, keywords and attachments.
func (c *Converter) ToProposition(ctx context.Context, entry webservice.ListingEntry) (*types.Proposition, error) {
	const component = "Converter"

	if err := checkEntry(entry); err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(*entry.ID), 10, 64)
	if err != nil {
		return nil, &SchemaError{EntryID: *entry.ID, Missing: "id"}
	}

	p := &types.Proposition{
		ID:                 id,
		Name:               strings.TrimSpace(*entry.Name),
		Number:             utils.ParseInt(*entry.Number),
		Year:               utils.ParseInt(*entry.Year),
		SubmissionDate:     utils.ParseDate(entry.SubmissionDate),
		Summary:            strings.TrimSpace(entry.Summary),
		SummaryExplanation: strings.TrimSpace(entry.SummaryExplanation),
		AuthorCount:        utils.ParseInt(entry.AuthorCount),
		GenderIndicator:    strings.TrimSpace(entry.GenderIndicator),
		AgenciesWithStatus: utils.ParseInt(entry.AgenciesWithStatus),
	}

	p.SetType(types.PropositionType{
		ID:    utils.ParseInt64(entry.Type.ID),
		Sigla: strings.TrimSpace(entry.Type.Sigla),
		Name:  strings.TrimSpace(entry.Type.Name),
	})
	p.SetNumberingAgency(types.NumberingAgency{
		ID:    utils.ParseInt64(entry.NumberingAgency.ID),
		Sigla: strings.TrimSpace(entry.NumberingAgency.Sigla),
		Name:  strings.TrimSpace(entry.NumberingAgency.Name),
	})
	p.SetRegime(types.Regime{
		ID:          utils.ParseInt64(entry.Regime.Code),
		Description: strings.TrimSpace(entry.Regime.Text),
	})
	p.SetAppreciation(types.Appreciation{
		ID:          utils.ParseInt64(entry.Appreciation.ID),
		Description: strings.TrimSpace(entry.Appreciation.Text),
	})
	p.SetAuthor(types.Author{
		Name:           strings.TrimSpace(entry.Author.Name),
		RegistrationID: strings.TrimSpace(entry.Author.Registry),
		PartyCode:      strings.TrimSpace(entry.Author.PartyCode),
		PartySigla:     strings.TrimSpace(entry.Author.PartySigla),
		State:          strings.TrimSpace(entry.Author.StateSigla),
	})
	p.SetLastDispatch(types.Dispatch{
		Date: utils.ParseDate(entry.LastDispatch.Date),
		Text: strings.TrimSpace(entry.LastDispatch.Text),
	})
	p.SetStatus(toStatus(entry.Status))

	detail, err := c.details.PropositionDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("detail for %s: %w", p, err)
	}
	applyDetail(p, detail)

	c.appLogger.Debug(component, "Mapped proposition: name=%s id=%d attachments=%d", p.Name, p.ID, len(p.Attachments))
	return p, nil
}

func checkEntry(e webservice.ListingEntry) error {
	var entryID string
	if e.ID != nil {
		entryID = strings.TrimSpace(*e.ID)
	}

	required := []struct {
		element string
		present bool
	}{
		{"id", e.ID != nil},
		{"nome", e.Name != nil},
		{"tipoProposicao", e.Type != nil},
		{"numero", e.Number != nil},
		{"ano", e.Year != nil},
		{"orgaoNumerador", e.NumberingAgency != nil},
		{"regime", e.Regime != nil},
		{"apreciacao", e.Appreciation != nil},
		{"autor1", e.Author != nil},
		{"ultimoDespacho", e.LastDispatch != nil},
		{"situacao", e.Status != nil},
		{"situacao/orgao", e.Status != nil && e.Status.Agency != nil},
	}
	for _, r := range required {
		if !r.present {
			return &SchemaError{EntryID: entryID, Missing: r.element}
		}
	}
	return nil
}

func toStatus(s *webservice.StatusElement) types.Status {
	status := types.Status{
		ID:          utils.ParseInt64(s.ID),
		Description: strings.TrimSpace(s.Description),
		Agency: types.StatusAgency{
			ID:    utils.ParseInt64(s.Agency.Code),
			Sigla: strings.TrimSpace(s.Agency.Sigla),
		},
	}

	// an absent element, an empty code and a zero code all mean "no principal"
	if s.Principal != nil {
		if code := utils.ParseInt64(s.Principal.Code); code != 0 {
			status.Principal = &types.PrincipalRef{
				ID:   code,
				Name: strings.TrimSpace(s.Principal.Name),
			}
		}
	}
	return status
}

func applyDetail(p *types.Proposition, d *webservice.Detail) {
	p.SetTopic(strings.TrimSpace(d.Topic))
	p.SetFullTextLink(strings.TrimSpace(d.FullTextLink))
	p.SetKeywords(utils.SplitList(d.Keywords))
	for _, a := range d.Attachments {
		p.AddAttachment(a.Ref())
	}
}
