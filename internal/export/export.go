// Package export flattens a persisted batch into a CSV table, one row per proposition.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var ErrEmptyBatch = errors.New("batch has no propositions")

const dateLayout = "2006-01-02"

// Row is the flat view of a proposition. Unset substructures export as empty cells.
type Row struct {
	ID               int    `dataframe:"id"`
	Name             string `dataframe:"nome"`
	Type             string `dataframe:"tipo"`
	Number           int    `dataframe:"numero"`
	Year             int    `dataframe:"ano"`
	SubmissionDate   string `dataframe:"data_apresentacao"`
	Summary          string `dataframe:"ementa"`
	NumberingAgency  string `dataframe:"orgao_numerador"`
	Regime           string `dataframe:"regime"`
	Appreciation     string `dataframe:"apreciacao"`
	Author           string `dataframe:"autor"`
	AuthorParty      string `dataframe:"autor_partido"`
	AuthorState      string `dataframe:"autor_uf"`
	AuthorCount      int    `dataframe:"qtd_autores"`
	LastDispatchDate string `dataframe:"data_ultimo_despacho"`
	Status           string `dataframe:"situacao"`
	StatusAgency     string `dataframe:"situacao_orgao"`
	PrincipalID      int    `dataframe:"principal_id"`
	Topic            string `dataframe:"tema"`
	Keywords         string `dataframe:"indexacao"`
	FullTextLink     string `dataframe:"link_inteiro_teor"`
	Attachments      int    `dataframe:"qtd_apensados"`
	FullTextTokens   int    `dataframe:"qtd_tokens_inteiro_teor"`
	HasFullText      bool   `dataframe:"tem_inteiro_teor"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// NewRow reads every optional substructure, leaving the column blank when it is unset.
func NewRow(p *types.Proposition) Row {
	row := Row{
		ID:             int(p.ID),
		Name:           p.Name,
		Number:         p.Number,
		Year:           p.Year,
		SubmissionDate: formatDate(p.SubmissionDate),
		Summary:        p.Summary,
		AuthorCount:    p.AuthorCount,
		Attachments:    len(p.Attachments),
	}

	if t, err := p.Type(); err == nil {
		row.Type = t.Sigla
	}
	if a, err := p.NumberingAgency(); err == nil {
		row.NumberingAgency = a.Sigla
	}
	if r, err := p.Regime(); err == nil {
		row.Regime = r.Description
	}
	if a, err := p.Appreciation(); err == nil {
		row.Appreciation = a.Description
	}
	if a, err := p.Author(); err == nil {
		row.Author = a.Name
		row.AuthorParty = a.PartySigla
		row.AuthorState = a.State
	}
	if d, err := p.LastDispatch(); err == nil {
		row.LastDispatchDate = formatDate(d.Date)
	}
	if s, err := p.Status(); err == nil {
		row.Status = s.Description
		row.StatusAgency = s.Agency.Sigla
		if s.Principal != nil {
			row.PrincipalID = int(s.Principal.ID)
		}
	}
	if topic, err := p.Topic(); err == nil {
		row.Topic = topic
	}
	if k, err := p.Keywords(); err == nil {
		row.Keywords = strings.Join(k, ", ")
	}
	if link, err := p.FullTextLink(); err == nil {
		row.FullTextLink = link
	}
	if tokens, ok := p.FullText(); ok {
		row.HasFullText = true
		row.FullTextTokens = len(tokens)
	}
	return row
}

// DataFrame builds the table for a batch.
func DataFrame(batch *types.Batch) (dataframe.DataFrame, error) {
	if len(batch.Propositions) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", batch.Key, ErrEmptyBatch)
	}

	rows := make([]Row, 0, len(batch.Propositions))
	for _, p := range batch.Propositions {
		rows = append(rows, NewRow(p))
	}

	df := dataframe.LoadStructs(rows)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build dataframe for %s: %w", batch.Key, df.Err)
	}
	return df, nil
}

// WriteCSV writes the batch table to w.
func WriteCSV(w io.Writer, batch *types.Batch, windows1252 bool) error {
	df, err := DataFrame(batch)
	if err != nil {
		return err
	}
	if err := WriteFrame(w, df, windows1252); err != nil {
		return fmt.Errorf("write csv for %s: %w", batch.Key, err)
	}
	return nil
}

// WriteFrame writes df as CSV. With windows1252 set the output is re-encoded
// for spreadsheet tools, replacing characters the code page lacks.
func WriteFrame(w io.Writer, df dataframe.DataFrame, windows1252 bool) error {
	if !windows1252 {
		return df.WriteCSV(w)
	}

	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	encoded := enc.Writer(w)
	if err := df.WriteCSV(encoded); err != nil {
		return err
	}
	if c, ok := encoded.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
