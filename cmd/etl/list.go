package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/store"
	"github.com/spf13/cobra"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newListCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Prints the reference catalogues of the proposition services.",
	}

	catalogue := func(use, short, cacheName string, fetch func(ctx context.Context) (any, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := fetch(cmd.Context())
				if err != nil {
					return fmt.Errorf("%s: %w", cacheName, err)
				}
				return writeJSON(cmd.OutOrStdout(), items)
			},
		}
	}

	cmd.AddCommand(
		catalogue("types", "Proposition type siglas (ListarSiglasTipoProposicao)", "tipos_proposicao", func(ctx context.Context) (any, error) {
			items, _, err := store.LoadOrFetch(app.cache(), "tipos_proposicao", func() ([]types.PropositionTypeSigla, error) {
				return app.client().PropositionTypes(ctx)
			})
			return items, err
		}),
		catalogue("status", "Proposition statuses (ListarSituacoesProposicao)", "situacoes_proposicao", func(ctx context.Context) (any, error) {
			items, _, err := store.LoadOrFetch(app.cache(), "situacoes_proposicao", func() ([]types.StatusKind, error) {
				return app.client().StatusKinds(ctx)
			})
			return items, err
		}),
		catalogue("authors", "Author types (ListarTiposAutores)", "tipos_autores", func(ctx context.Context) (any, error) {
			items, _, err := store.LoadOrFetch(app.cache(), "tipos_autores", func() ([]types.AuthorType, error) {
				return app.client().AuthorTypes(ctx)
			})
			return items, err
		}),
	)
	return cmd
}
