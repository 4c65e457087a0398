package main

import (
	"github.com/farxc/envelopa-camara/internal/camara/legislators"
	"github.com/spf13/cobra"
)

func newLegislatorsCmd(app *application) *cobra.Command {
	service := func() *legislators.Service {
		return legislators.NewService(app.client(), app.cache(), app.appLogger)
	}

	cmd := &cobra.Command{
		Use:   "legislators",
		Short: "Prints parties, party blocs, bench leaderships and deputies.",
	}

	parties := &cobra.Command{
		Use:   "parties",
		Short: "Parties registered at the Câmara (ObterPartidosCD)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := service().Parties(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}

	var legislature int
	blocs := &cobra.Command{
		Use:   "blocs --legislature <n>",
		Short: "Party blocs of one legislature (ObterPartidosBlocoCD)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := service().Blocs(cmd.Context(), legislature)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}
	blocs.Flags().IntVar(&legislature, "legislature", 55, "Legislature number")

	benches := &cobra.Command{
		Use:   "benches",
		Short: "Leaders, vice-leaders and representatives of each bench (ObterLideresBancadas)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := service().Benches(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}

	deputies := &cobra.Command{
		Use:   "deputies",
		Short: "Deputies currently in office (ObterDeputados)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := service().Deputies(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}

	cmd.AddCommand(parties, blocs, benches, deputies)
	return cmd
}
