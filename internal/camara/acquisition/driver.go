// Package acquisition builds and persists proposition batches per type and year.
package acquisition

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/farxc/envelopa-camara/internal/camara/attachments"
	"github.com/farxc/envelopa-camara/internal/camara/converter"
	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/camara/webservice"
	"github.com/farxc/envelopa-camara/internal/logger"
	"github.com/farxc/envelopa-camara/internal/store"
)

// Source is the part of the web-service client the driver needs.
type Source interface {
	attachments.Lister
	converter.DetailFetcher
}

// Result is the outcome of one (sigla, year, attachments) combination.
type Result struct {
	Key          types.BatchKey
	Status       string
	Propositions int
	Err          error
}

type Driver struct {
	source    Source
	mapper    *converter.Converter
	resolver  *attachments.Resolver
	storage   *store.Storage
	appLogger *logger.Logger
	now       func() time.Time
}

func NewDriver(source Source, storage *store.Storage, appLogger *logger.Logger) *Driver {
	if appLogger == nil {
		appLogger = logger.Discard()
	}
	mapper := converter.New(source, appLogger)
	return &Driver{
		source:    source,
		mapper:    mapper,
		resolver:  attachments.NewResolver(source, mapper, appLogger),
		storage:   storage,
		appLogger: appLogger,
		now:       time.Now,
	}
}

// Run acquires every year in order. Years whose batch is already stored are
// skipped. The first failing year stops the run and nothing is stored for it.
func (d *Driver) Run(ctx context.Context, sigla string, years []int, withAttachments bool) ([]Result, error) {
	const component = "Acquisition"
	d.appLogger.Info(component, "Starting acquisition: sigla=%s years=%v attachments=%t", sigla, years, withAttachments)

	results := make([]Result, 0, len(years))
	for _, year := range years {
		key := types.NewBatchKey(sigla, year, withAttachments)
		started := d.now()

		result := d.processYear(ctx, key)
		d.recordRun(ctx, result, started)
		results = append(results, result)

		if result.Err != nil {
			d.appLogger.Error(component, "Acquisition aborted: batch=%s err=%v", key, result.Err)
			return results, fmt.Errorf("acquire %s: %w", key, result.Err)
		}
	}

	d.appLogger.Info(component, "Acquisition finished: sigla=%s years=%d", sigla, len(years))
	return results, nil
}

func (d *Driver) processYear(ctx context.Context, key types.BatchKey) Result {
	const component = "Acquisition"

	exists, err := d.storage.Batches.Exists(ctx, key)
	if err != nil {
		return Result{Key: key, Status: store.StatusFailure, Err: fmt.Errorf("check batch: %w", err)}
	}
	if exists {
		d.appLogger.Info(component, "Batch already stored, skipping: batch=%s", key)
		return Result{Key: key, Status: store.StatusSkipped}
	}

	batch, err := d.buildBatch(ctx, key)
	if err != nil {
		return Result{Key: key, Status: store.StatusFailure, Err: err}
	}

	if err := d.storage.Batches.Put(ctx, batch); err != nil {
		return Result{Key: key, Status: store.StatusFailure, Err: fmt.Errorf("store batch: %w", err)}
	}

	d.appLogger.Info(component, "Batch stored: batch=%s propositions=%d", key, len(batch.Propositions))
	return Result{Key: key, Status: store.StatusSuccess, Propositions: len(batch.Propositions)}
}

func (d *Driver) buildBatch(ctx context.Context, key types.BatchKey) (*types.Batch, error) {
	const component = "Acquisition"

	entries, err := d.source.ListPropositions(ctx, webservice.ListQuery{
		Sigla: key.Sigla,
		Year:  strconv.Itoa(key.Year),
	})
	if errors.Is(err, webservice.ErrNotFound) {
		d.appLogger.Warn(component, "No propositions listed: batch=%s", key)
		entries = nil
	} else if err != nil {
		return nil, fmt.Errorf("list propositions: %w", err)
	}

	seen := types.NewSeenSet()
	batch := &types.Batch{Key: key, Propositions: []*types.Proposition{}}

	// attachments materialized ahead of their own listing entry, waiting to be expanded
	pending := map[types.PropositionKey]*types.Proposition{}

	insertAfter := func(parent *types.Proposition, attached []*types.Proposition) {
		at := slices.Index(batch.Propositions, parent) + 1
		for _, a := range attached {
			batch.Propositions = slices.Insert(batch.Propositions, at, a)
			at++
			if k, err := a.Key(); err == nil {
				pending[k] = a
			}
			d.appLogger.Info(component, "Progress: batch=%s count=%d/%d last=%s", key, len(batch.Propositions), len(entries), a)
		}
	}

	expand := func(p *types.Proposition) error {
		if !key.WithAttachments || len(p.Attachments) == 0 {
			return nil
		}
		attached, err := d.resolver.Resolve(ctx, p.Attachments, seen)
		if err != nil {
			return fmt.Errorf("attachments of %s: %w", p, err)
		}
		insertAfter(p, attached)
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// already materialized as an attachment of an earlier entry: keep that
		// record and expand its attachments now
		if k, ok := entry.Key(); ok && seen.Contains(k) {
			if p, ok := pending[k]; ok {
				delete(pending, k)
				if err := expand(p); err != nil {
					return nil, err
				}
			}
			continue
		}

		p, err := d.mapper.ToProposition(ctx, entry)
		if err != nil {
			return nil, err
		}
		if k, err := p.Key(); err == nil {
			seen.Add(k)
		}
		batch.Propositions = append(batch.Propositions, p)
		d.appLogger.Info(component, "Progress: batch=%s count=%d/%d last=%s", key, len(batch.Propositions), len(entries), p)

		if err := expand(p); err != nil {
			return nil, err
		}
	}

	batch.Seen = seen.Keys()
	batch.CreatedAt = d.now().UTC()
	return batch, nil
}

func (d *Driver) recordRun(ctx context.Context, result Result, started time.Time) {
	const component = "Acquisition"
	if d.storage.Runs == nil {
		return
	}

	run := &store.AcquisitionRun{
		Sigla:           result.Key.Sigla,
		Year:            result.Key.Year,
		WithAttachments: result.Key.WithAttachments,
		Status:          result.Status,
		Propositions:    result.Propositions,
		StartedAt:       started,
		FinishedAt:      d.now(),
	}
	if result.Err != nil {
		run.Message = result.Err.Error()
	}

	if err := d.storage.Runs.InsertRun(ctx, run); err != nil {
		d.appLogger.Error(component, "Failed to record run: batch=%s status=%s err=%v", result.Key, result.Status, err)
	}
}
