// Package legislators fetches parties, party blocs, benches and deputies from SitCamaraWS.
package legislators

import "time"

type Party struct {
	ID        string    `json:"id"`
	Sigla     string    `json:"sigla"`
	Name      string    `json:"name"`
	CreatedOn time.Time `json:"created_on"`
	EndedOn   time.Time `json:"ended_on"`
}

// Bloc is a coalition of parties in one legislature.
type Bloc struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Sigla     string      `json:"sigla"`
	CreatedOn time.Time   `json:"created_on"`
	EndedOn   time.Time   `json:"ended_on"`
	Parties   []BlocParty `json:"parties"`
}

type BlocParty struct {
	ID       string    `json:"id"`
	Sigla    string    `json:"sigla"`
	Name     string    `json:"name"`
	JoinedOn time.Time `json:"joined_on"`
	LeftOn   time.Time `json:"left_on"`
}

// Bench (bancada) is the leadership of a party or bloc.
type Bench struct {
	Sigla           string       `json:"sigla"`
	Name            string       `json:"name"`
	Leader          *Leadership  `json:"leader,omitempty"`
	ViceLeaders     []Leadership `json:"vice_leaders"`
	Representatives []Leadership `json:"representatives"`
}

type Leadership struct {
	Name           string `json:"name"`
	RegistrationID string `json:"registration_id"`
	Party          string `json:"party"`
	State          string `json:"state"`
}

type Deputy struct {
	RegistrationID    string `json:"registration_id"`
	Condition         string `json:"condition"`
	Name              string `json:"name"`
	ParliamentaryName string `json:"parliamentary_name"`
	PhotoURL          string `json:"photo_url"`
	Gender            string `json:"gender"`
	State             string `json:"state"`
	Party             string `json:"party"`
	Office            string `json:"office"`
	Annex             string `json:"annex"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
}
