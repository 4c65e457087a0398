// Package webservice talks to the Câmara dos Deputados SitCamaraWS XML services.
package webservice

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/farxc/envelopa-camara/internal/logger"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

// DefaultBaseURL is the root of the SitCamaraWS services.
const DefaultBaseURL = "https://www.camara.leg.br/SitCamaraWS"

const userAgent = "envelopa-camara/0.1"

// ErrNotFound is returned when a service answers with an <erro> document.
var ErrNotFound = errors.New("no matching record")

type HTTPError struct {
	Path       string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected status %s", e.Path, e.Status)
}

// ListQuery filters ListarProposicoes. Empty fields are sent empty, as the service requires.
type ListQuery struct {
	Sigla  string
	Number string
	Year   string
}

type Client struct {
	http      *resty.Client
	appLogger *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, appLogger *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if appLogger == nil {
		appLogger = logger.Discard()
	}

	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return &Client{http: http, appLogger: appLogger}
}

// GetXML issues a GET against path and decodes the document root into dest.
func (c *Client) GetXML(ctx context.Context, path string, params map[string]string, dest any) error {
	const component = "WebService"
	c.appLogger.Debug(component, "Requesting: path=%s params=%v", path, params)

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	err = decodeXML(res.Body(), dest)
	if res.IsError() {
		// missing records come back as an <erro> document, with or without a 5xx
		if errors.Is(err, ErrNotFound) {
			return err
		}
		c.appLogger.Warn(component, "Non-OK HTTP response: path=%s status=%s", path, res.Status())
		return &HTTPError{Path: path, StatusCode: res.StatusCode(), Status: res.Status()}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decodeXML(body []byte, dest any) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("empty xml document")
		}
		if err != nil {
			return fmt.Errorf("decode xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "erro" {
			var e errorDocument
			if err := dec.DecodeElement(&e, &start); err != nil {
				return ErrNotFound
			}
			return fmt.Errorf("%w: %s", ErrNotFound, e.message())
		}
		if err := dec.DecodeElement(dest, &start); err != nil {
			return fmt.Errorf("decode xml: %w", err)
		}
		return nil
	}
}

// ListPropositions calls ListarProposicoes. A query that matches nothing returns ErrNotFound.
func (c *Client) ListPropositions(ctx context.Context, q ListQuery) ([]ListingEntry, error) {
	params := map[string]string{
		"sigla":              q.Sigla,
		"numero":             q.Number,
		"ano":                q.Year,
		"datApresentacaoIni": "",
		"datApresentacaoFim": "",
		"idTipoAutor":        "",
		"parteNomeAutor":     "",
		"siglaPartidoAutor":  "",
		"siglaUFAutor":       "",
		"generoAutor":        "",
		"codEstado":          "",
		"codOrgaoEstado":     "",
		"emTramitacao":       "",
	}

	var doc listingDocument
	if err := c.GetXML(ctx, "/Proposicoes.asmx/ListarProposicoes", params, &doc); err != nil {
		return nil, err
	}
	return doc.Propositions, nil
}

// PropositionDetail calls ObterProposicaoPorID.
func (c *Client) PropositionDetail(ctx context.Context, id int64) (*Detail, error) {
	params := map[string]string{"IdProp": strconv.FormatInt(id, 10)}

	var detail Detail
	if err := c.GetXML(ctx, "/Proposicoes.asmx/ObterProposicaoPorID", params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
