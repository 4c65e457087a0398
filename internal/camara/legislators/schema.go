package legislators

import "encoding/xml"

type partiesDocument struct {
	Parties []partyElement `xml:"partido"`
}

type partyElement struct {
	ID        string `xml:"idPartido"`
	Sigla     string `xml:"siglaPartido"`
	Name      string `xml:"nomePartido"`
	CreatedOn string `xml:"dataCriacao"`
	EndedOn   string `xml:"dataExtincao"`
}

type blocsDocument struct {
	Blocs []blocElement `xml:"bloco"`
}

type blocElement struct {
	ID        string             `xml:"idBloco"`
	Name      string             `xml:"nomeBloco"`
	Sigla     string             `xml:"siglaBloco"`
	CreatedOn string             `xml:"dataCriacaoBloco"`
	EndedOn   string             `xml:"dataExtincaoBloco"`
	Parties   []blocPartyElement `xml:"Partidos>partido"`
}

type blocPartyElement struct {
	ID       string `xml:"idPartido"`
	Sigla    string `xml:"siglaPartido"`
	Name     string `xml:"nomePartido"`
	JoinedOn string `xml:"dataAdesaoPartido"`
	LeftOn   string `xml:"dataDesligamentoPartido"`
}

type benchesDocument struct {
	Benches []benchElement `xml:"bancada"`
}

// benchElement keeps its children in document order; only lider,
// vice_lider and representante are expected.
type benchElement struct {
	Sigla    string          `xml:"sigla,attr"`
	Name     string          `xml:"nome,attr"`
	Children []leaderElement `xml:",any"`
}

type leaderElement struct {
	XMLName        xml.Name
	Name           string `xml:"nome"`
	RegistrationID string `xml:"ideCadastro"`
	Party          string `xml:"partido"`
	State          string `xml:"uf"`
}

type deputiesDocument struct {
	Deputies []deputyElement `xml:"deputado"`
}

type deputyElement struct {
	RegistrationID    string `xml:"ideCadastro"`
	Condition         string `xml:"condicao"`
	Name              string `xml:"nome"`
	ParliamentaryName string `xml:"nomeParlamentar"`
	PhotoURL          string `xml:"urlFoto"`
	Gender            string `xml:"sexo"`
	State             string `xml:"uf"`
	Party             string `xml:"partido"`
	Office            string `xml:"gabinete"`
	Annex             string `xml:"anexo"`
	Phone             string `xml:"fone"`
	Email             string `xml:"email"`
}
