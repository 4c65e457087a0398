// Package camaratest serves canned SitCamaraWS responses for tests.
package camaratest

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Fixture describes one proposition known to the fake service.
type Fixture struct {
	ID           int64
	Sigla        string
	Number       int
	Year         int
	Keywords     string
	FullTextLink string
	// Attachments are names such as "PL 101/2016".
	Attachments []string
	// Omit lists listing children to leave out, e.g. "regime".
	Omit []string
	// NoPrincipal drops the situacao/principal element.
	NoPrincipal bool
}

func (f Fixture) Name() string {
	return fmt.Sprintf("%s %d/%d", f.Sigla, f.Number, f.Year)
}

func (f Fixture) omitted(child string) bool {
	for _, o := range f.Omit {
		if o == child {
			return true
		}
	}
	return false
}

// ListingEntryXML renders f as a ListarProposicoes <proposicao>.
func ListingEntryXML(f Fixture) string {
	children := []struct{ name, body string }{
		{"id", strconv.FormatInt(f.ID, 10)},
		{"nome", f.Name()},
		{"tipoProposicao", fmt.Sprintf("<id>139</id><sigla>%s </sigla><nome>Projeto de Lei</nome>", f.Sigla)},
		{"numero", strconv.Itoa(f.Number)},
		{"ano", strconv.Itoa(f.Year)},
		{"orgaoNumerador", "<id>180</id><sigla>PLEN</sigla><nome>PLENÁRIO</nome>"},
		{"datApresentacao", fmt.Sprintf("02/03/%d", f.Year)},
		{"txtEmenta", "Altera a Lei nº 9.503, de 23 de setembro de 1997."},
		{"txtExplicacaoEmenta", ""},
		{"regime", "<codRegime>99</codRegime><txtRegime>Ordinária</txtRegime>"},
		{"apreciacao", "<id>2</id><txtApreciacao>Proposição Sujeita à Apreciação Conclusiva pelas Comissões</txtApreciacao>"},
		{"autor1", "<txtNomeAutor>Fulano de Tal</txtNomeAutor><idecadastro>160518</idecadastro><codPartido>36769</codPartido><txtSiglaPartido>PT</txtSiglaPartido><txtSiglaUF>SP</txtSiglaUF>"},
		{"qtdAutores", "1"},
		{"ultimoDespacho", fmt.Sprintf("<datDespacho>10/03/%d</datDespacho><txtDespacho>Às Comissões de Viação e Transportes</txtDespacho>", f.Year)},
		{"situacao", situacaoXML(f)},
		{"indGenero", "o"},
		{"qtdOrgaosComEstado", "2"},
	}

	var b strings.Builder
	b.WriteString("<proposicao>")
	for _, c := range children {
		if f.omitted(c.name) {
			continue
		}
		fmt.Fprintf(&b, "<%s>%s</%s>", c.name, c.body, c.name)
	}
	b.WriteString("</proposicao>")
	return b.String()
}

func situacaoXML(f Fixture) string {
	s := "<id>924</id><descricao>Aguardando Parecer</descricao>"
	if !f.omitted("orgao") {
		s += "<orgao><codOrgaoEstado>2003</codOrgaoEstado><siglaOrgaoEstado>CCJC</siglaOrgaoEstado></orgao>"
	}
	if !f.NoPrincipal {
		s += "<principal><codProposicaoPrincipal>0</codProposicaoPrincipal><proposicaoPrincipal></proposicaoPrincipal></principal>"
	}
	return s
}

// DetailXML renders f as an ObterProposicaoPorID document.
func DetailXML(f Fixture) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<proposicao tipo="%s " numero="%d" ano="%d">`, f.Sigla, f.Number, f.Year)
	fmt.Fprintf(&b, "<nomeProposicao>%s</nomeProposicao><idProposicao>%d</idProposicao>", f.Name(), f.ID)
	b.WriteString("<tema>Viação e Transportes</tema>")
	fmt.Fprintf(&b, "<Indexacao>%s</Indexacao>", html.EscapeString(f.Keywords))
	fmt.Fprintf(&b, "<LinkInteiroTeor>%s</LinkInteiroTeor>", html.EscapeString(f.FullTextLink))
	b.WriteString("<apensadas>")
	for i, name := range f.Attachments {
		fmt.Fprintf(&b, "<proposicao><nomeProposicao>%s</nomeProposicao><codProposicao>%d</codProposicao></proposicao>", name, 900000+i)
	}
	b.WriteString("</apensadas></proposicao>")
	return b.String()
}

const notFoundXML = `<?xml version="1.0" encoding="utf-8"?><erro><descricao>Nenhuma proposição encontrada</descricao></erro>`

// Server is a fake SitCamaraWS that counts the requests it serves.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	fixtures     []Fixture
	listingCalls []string
	detailCalls  []int64
}

func NewServer(t testing.TB, fixtures ...Fixture) *Server {
	s := &Server{fixtures: fixtures}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	q := r.URL.Query()

	switch {
	case strings.HasSuffix(r.URL.Path, "/ListarProposicoes"):
		s.mu.Lock()
		s.listingCalls = append(s.listingCalls, r.URL.RawQuery)
		s.mu.Unlock()

		var matches []string
		for _, f := range s.fixtures {
			if !strings.EqualFold(strings.TrimSpace(q.Get("sigla")), f.Sigla) || q.Get("ano") != strconv.Itoa(f.Year) {
				continue
			}
			if n := q.Get("numero"); n != "" && n != strconv.Itoa(f.Number) {
				continue
			}
			matches = append(matches, ListingEntryXML(f))
		}
		if len(matches) == 0 {
			fmt.Fprint(w, notFoundXML)
			return
		}
		fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?><proposicoes>%s</proposicoes>`, strings.Join(matches, ""))

	case strings.HasSuffix(r.URL.Path, "/ObterProposicaoPorID"):
		id, _ := strconv.ParseInt(q.Get("IdProp"), 10, 64)
		s.mu.Lock()
		s.detailCalls = append(s.detailCalls, id)
		s.mu.Unlock()

		for _, f := range s.fixtures {
			if f.ID == id {
				fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?>%s`, DetailXML(f))
				return
			}
		}
		fmt.Fprint(w, notFoundXML)

	default:
		http.NotFound(w, r)
	}
}

// ListingCalls returns the raw query of every ListarProposicoes request.
func (s *Server) ListingCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.listingCalls...)
}

func (s *Server) DetailCalls() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.detailCalls...)
}
