package types

// PropositionTypeSigla is one entry of the proposition type catalogue.
type PropositionTypeSigla struct {
	Sigla       string `json:"sigla"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Gender      string `json:"gender"`
}

// StatusKind is one entry of the proposition status catalogue.
type StatusKind struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type AuthorType struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}
