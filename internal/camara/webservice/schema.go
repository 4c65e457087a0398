package webservice

import (
	"strings"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/camara/utils"
)

// The official SitCamaraWS documentation does not match what the services return;
// these structs follow the actual responses. Pointer fields are the children a
// listing entry must carry; the converter rejects entries where they are nil.

type listingDocument struct {
	Propositions []ListingEntry `xml:"proposicao"`
}

// ListingEntry is one <proposicao> of ListarProposicoes.
type ListingEntry struct {
	ID                 *string              `xml:"id"`
	Name               *string              `xml:"nome"`
	Type               *TypeElement         `xml:"tipoProposicao"`
	Number             *string              `xml:"numero"`
	Year               *string              `xml:"ano"`
	NumberingAgency    *AgencyElement       `xml:"orgaoNumerador"`
	SubmissionDate     string               `xml:"datApresentacao"`
	Summary            string               `xml:"txtEmenta"`
	SummaryExplanation string               `xml:"txtExplicacaoEmenta"`
	Regime             *RegimeElement       `xml:"regime"`
	Appreciation       *AppreciationElement `xml:"apreciacao"`
	Author             *AuthorElement       `xml:"autor1"`
	AuthorCount        string               `xml:"qtdAutores"`
	LastDispatch       *DispatchElement     `xml:"ultimoDespacho"`
	Status             *StatusElement       `xml:"situacao"`
	GenderIndicator    string               `xml:"indGenero"`
	AgenciesWithStatus string               `xml:"qtdOrgaosComEstado"`
}

// Key reads the entry's identity without mapping it; ok is false when
// the identifying children are missing.
func (e ListingEntry) Key() (types.PropositionKey, bool) {
	if e.Type == nil || e.Number == nil || e.Year == nil {
		return types.PropositionKey{}, false
	}
	return types.NewPropositionKey(e.Type.Sigla, utils.ParseInt(*e.Number), utils.ParseInt(*e.Year)), true
}

type TypeElement struct {
	ID    string `xml:"id"`
	Sigla string `xml:"sigla"`
	Name  string `xml:"nome"`
}

type AgencyElement struct {
	ID    string `xml:"id"`
	Sigla string `xml:"sigla"`
	Name  string `xml:"nome"`
}

type RegimeElement struct {
	Code string `xml:"codRegime"`
	Text string `xml:"txtRegime"`
}

type AppreciationElement struct {
	ID   string `xml:"id"`
	Text string `xml:"txtApreciacao"`
}

type AuthorElement struct {
	Name       string `xml:"txtNomeAutor"`
	Registry   string `xml:"idecadastro"`
	PartyCode  string `xml:"codPartido"`
	PartySigla string `xml:"txtSiglaPartido"`
	StateSigla string `xml:"txtSiglaUF"`
}

type DispatchElement struct {
	Date string `xml:"datDespacho"`
	Text string `xml:"txtDespacho"`
}

type StatusElement struct {
	ID          string               `xml:"id"`
	Description string               `xml:"descricao"`
	Agency      *StatusAgencyElement `xml:"orgao"`
	Principal   *PrincipalElement    `xml:"principal"`
}

type StatusAgencyElement struct {
	Code  string `xml:"codOrgaoEstado"`
	Sigla string `xml:"siglaOrgaoEstado"`
}

type PrincipalElement struct {
	Code string `xml:"codProposicaoPrincipal"`
	Name string `xml:"proposicaoPrincipal"`
}

// Detail is the ObterProposicaoPorID document.
type Detail struct {
	Topic        string             `xml:"tema"`
	Keywords     string             `xml:"Indexacao"`
	FullTextLink string             `xml:"LinkInteiroTeor"`
	Attachments  []DetailAttachment `xml:"apensadas>proposicao"`
}

type DetailAttachment struct {
	Name string `xml:"nomeProposicao"`
	Code string `xml:"codProposicao"`
}

func (a DetailAttachment) Ref() types.AttachmentRef {
	return types.AttachmentRef{Name: strings.TrimSpace(a.Name), Code: strings.TrimSpace(a.Code)}
}

// catalogueDocument holds any list whose items carry their data as attributes.
type catalogueDocument struct {
	Items []catalogueItem `xml:",any"`
}

type catalogueItem struct {
	ID          string `xml:"id,attr"`
	Sigla       string `xml:"tipoSigla,attr"`
	Description string `xml:"descricao,attr"`
	Active      string `xml:"ativa,attr"`
	Gender      string `xml:"genero,attr"`
}

type errorDocument struct {
	Description string `xml:"descricao"`
	Text        string `xml:",chardata"`
}

func (e errorDocument) message() string {
	if msg := strings.TrimSpace(e.Description); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Text)
}
