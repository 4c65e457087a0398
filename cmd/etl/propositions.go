package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/farxc/envelopa-camara/internal/camara/acquisition"
	"github.com/farxc/envelopa-camara/internal/camara/downloader"
	"github.com/farxc/envelopa-camara/internal/camara/fulltext"
	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/store"
	"github.com/spf13/cobra"
)

type batchFlags struct {
	sigla           string
	years           []int
	from            int
	to              int
	withAttachments bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sigla, "sigla", "", "Proposition type sigla, e.g. PL or PEC")
	cmd.Flags().IntSliceVar(&f.years, "years", nil, "Comma-separated years to process")
	cmd.Flags().IntVar(&f.from, "from", 0, "First year of a range (used with --to)")
	cmd.Flags().IntVar(&f.to, "to", 0, "Last year of a range, inclusive")
	cmd.Flags().BoolVar(&f.withAttachments, "attachments", false, "Include attached (apensadas) propositions")
	cmd.MarkFlagRequired("sigla")
}

// yearList merges --years with the --from/--to range, keeping order.
func (f *batchFlags) yearList() ([]int, error) {
	years := append([]int{}, f.years...)
	if f.from != 0 || f.to != 0 {
		if f.from == 0 || f.to == 0 || f.from > f.to {
			return nil, fmt.Errorf("invalid year range %d..%d", f.from, f.to)
		}
		for y := f.from; y <= f.to; y++ {
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no years given: use --years or --from/--to")
	}
	return years, nil
}

func newPropositionsCmd(app *application) *cobra.Command {
	var flags batchFlags
	var withFullText bool

	cmd := &cobra.Command{
		Use:   "propositions --sigla <sigla> [--years y1,y2 | --from y --to y] [--attachments] [--fulltext]",
		Short: "Acquires every proposition of a type, one batch per year, skipping batches already stored.",
		RunE: func(cmd *cobra.Command, args []string) error {
			const component = "Propositions"

			years, err := flags.yearList()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			storage, err := app.openStorage(ctx)
			if err != nil {
				return err
			}

			monitor := NewMonitor()
			monitor.Start(400*time.Millisecond, app.appLogger)
			startingTime := time.Now()

			driver := acquisition.NewDriver(app.client(), storage, app.appLogger)
			results, runErr := driver.Run(ctx, flags.sigla, years, flags.withAttachments)

			stats := monitor.Stop()
			for _, r := range results {
				app.appLogger.Info(component, "Batch finished: batch=%s status=%s propositions=%d", r.Key, r.Status, r.Propositions)
			}
			app.appLogger.Info(component, "Acquisition finished: batches=%d duration=%.2f seconds peakGoroutines=%d peakMemoryMB=%d",
				len(results), time.Since(startingTime).Seconds(), stats.PeakGoroutines, stats.PeakMemoryMB)
			if runErr != nil {
				return runErr
			}

			if !withFullText {
				return nil
			}
			resolver := app.fullTextResolver()
			for _, r := range results {
				if _, err := resolver.Sweep(ctx, storage.Batches, r.Key); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&withFullText, "fulltext", false, "Resolve full texts after acquisition")
	return cmd
}

func (app *application) fullTextResolver() *fulltext.Resolver {
	return fulltext.NewResolver(
		downloader.New(app.config.httpTimeout, app.appLogger),
		fulltext.DirQuarantine{Dir: app.config.quarantineDir},
		app.appLogger,
	)
}

func newFullTextCmd(app *application) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "fulltext --sigla <sigla> [--years y1,y2 | --from y --to y] [--attachments]",
		Short: "Downloads, extracts and tokenizes the full text of every proposition in stored batches.",
		RunE: func(cmd *cobra.Command, args []string) error {
			const component = "FullTextCmd"

			years, err := flags.yearList()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			storage, err := app.openStorage(ctx)
			if err != nil {
				return err
			}

			monitor := NewMonitor()
			monitor.Start(400*time.Millisecond, app.appLogger)
			defer monitor.Stop()

			resolver := app.fullTextResolver()
			total := fulltext.Summary{}
			for _, year := range years {
				key := types.NewBatchKey(flags.sigla, year, flags.withAttachments)
				summary, err := resolver.Sweep(ctx, storage.Batches, key)
				if errors.Is(err, store.ErrBatchNotFound) {
					app.appLogger.Warn(component, "No stored batch, skipping: batch=%s", key)
					continue
				}
				for state, n := range summary {
					total[state] += n
				}
				if err != nil {
					return fmt.Errorf("full text %s: %w", key, err)
				}
			}
			app.appLogger.Info(component, "Full text finished: batches=%d %s", len(years), total)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
