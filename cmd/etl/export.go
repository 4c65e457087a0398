package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *application) *cobra.Command {
	var (
		sigla           string
		year            int
		withAttachments bool
		out             string
		windows1252     bool
	)

	cmd := &cobra.Command{
		Use:   "export --sigla <sigla> --year <year> [--attachments] [--out file.csv]",
		Short: "Writes a stored batch as CSV, one row per proposition.",
		RunE: func(cmd *cobra.Command, args []string) error {
			const component = "Export"

			ctx := cmd.Context()
			storage, err := app.openStorage(ctx)
			if err != nil {
				return err
			}

			key := types.NewBatchKey(sigla, year, withAttachments)
			batch, err := storage.Batches.Get(ctx, key)
			if err != nil {
				return fmt.Errorf("export %s: %w", key, err)
			}

			if out == "" {
				out = filepath.Join("output", fmt.Sprintf("proposicoes_%s.csv", key))
			}
			if err := os.MkdirAll(filepath.Dir(out), os.ModePerm); err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := export.WriteCSV(f, batch, windows1252); err != nil {
				return err
			}
			app.appLogger.Info(component, "Batch exported: batch=%s rows=%d path=%s", key, len(batch.Propositions), out)
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&sigla, "sigla", "", "Proposition type sigla")
	cmd.Flags().IntVar(&year, "year", 0, "Batch year")
	cmd.Flags().BoolVar(&withAttachments, "attachments", false, "Export the batch built with attachments")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default output/proposicoes_<batch>.csv)")
	cmd.Flags().BoolVar(&windows1252, "windows1252", false, "Encode the CSV as Windows-1252")
	cmd.MarkFlagRequired("sigla")
	cmd.MarkFlagRequired("year")
	return cmd
}
