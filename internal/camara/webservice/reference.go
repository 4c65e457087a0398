package webservice

import (
	"context"
	"strings"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/camara/utils"
)

func (c *Client) catalogue(ctx context.Context, path string) ([]catalogueItem, error) {
	var doc catalogueDocument
	if err := c.GetXML(ctx, path, nil, &doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// PropositionTypes calls ListarSiglasTipoProposicao.
func (c *Client) PropositionTypes(ctx context.Context) ([]types.PropositionTypeSigla, error) {
	items, err := c.catalogue(ctx, "/Proposicoes.asmx/ListarSiglasTipoProposicao")
	if err != nil {
		return nil, err
	}

	siglas := make([]types.PropositionTypeSigla, 0, len(items))
	for _, item := range items {
		siglas = append(siglas, types.PropositionTypeSigla{
			Sigla:       strings.TrimSpace(item.Sigla),
			Description: strings.TrimSpace(item.Description),
			Active:      utils.ParseBool(item.Active),
			Gender:      strings.TrimSpace(item.Gender),
		})
	}
	return siglas, nil
}

// StatusKinds calls ListarSituacoesProposicao.
func (c *Client) StatusKinds(ctx context.Context) ([]types.StatusKind, error) {
	items, err := c.catalogue(ctx, "/Proposicoes.asmx/ListarSituacoesProposicao")
	if err != nil {
		return nil, err
	}

	kinds := make([]types.StatusKind, 0, len(items))
	for _, item := range items {
		kinds = append(kinds, types.StatusKind{
			ID:          utils.ParseInt64(item.ID),
			Description: strings.TrimSpace(item.Description),
			Active:      utils.ParseBool(item.Active),
		})
	}
	return kinds, nil
}

// AuthorTypes calls ListarTiposAutores.
func (c *Client) AuthorTypes(ctx context.Context) ([]types.AuthorType, error) {
	items, err := c.catalogue(ctx, "/Proposicoes.asmx/ListarTiposAutores")
	if err != nil {
		return nil, err
	}

	authorTypes := make([]types.AuthorType, 0, len(items))
	for _, item := range items {
		authorTypes = append(authorTypes, types.AuthorType{
			ID:          utils.ParseInt64(item.ID),
			Description: strings.TrimSpace(item.Description),
		})
	}
	return authorTypes, nil
}
