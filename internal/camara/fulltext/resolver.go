package fulltext

import (
	"context"
	"fmt"

	"github.com/farxc/envelopa-camara/internal/camara/downloader"
	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/logger"
	"github.com/farxc/envelopa-camara/internal/store"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*downloader.DownloadResult, error)
}

type Resolver struct {
	fetcher    Fetcher
	quarantine Quarantine
	appLogger  *logger.Logger
}

func NewResolver(fetcher Fetcher, quarantine Quarantine, appLogger *logger.Logger) *Resolver {
	if appLogger == nil {
		appLogger = logger.Discard()
	}
	return &Resolver{fetcher: fetcher, quarantine: quarantine, appLogger: appLogger}
}

// Resolve attaches the tokenized full text to p. A proposition that already
// has text is left alone and no request is made. No outcome is returned as an
// error: every failure ends in a State and a log line.
func (r *Resolver) Resolve(ctx context.Context, p *types.Proposition) State {
	const component = "FullText"

	if p.HasFullText() {
		return Resolved
	}

	link, err := p.FullTextLink()
	if err != nil || !ValidLink(link) {
		r.appLogger.Warn(component, "Missing full-text link: id=%d link=%q", p.ID, link)
		return SkippedNoLink
	}

	res, err := r.fetcher.Fetch(ctx, link)
	if err != nil {
		r.appLogger.Warn(component, "Download failed: id=%d link=%s err=%v", p.ID, link, err)
		return DownloadFailed
	}

	text, err := Extract(res.Body)
	if err != nil {
		path, qerr := r.quarantine.Put(p.ID, res.Body)
		if qerr != nil {
			r.appLogger.Error(component, "Failed to quarantine document: id=%d err=%v", p.ID, qerr)
		}
		r.appLogger.Warn(component, "Corrupt document quarantined: id=%d link=%s path=%s err=%v", p.ID, link, path, err)
		return Quarantined
	}

	tokens := Tokenize(text)
	p.SetFullText(tokens)
	r.appLogger.Debug(component, "Full text resolved: id=%d tokens=%d", p.ID, len(tokens))
	return Resolved
}

// Sweep resolves every proposition of a stored batch and stores the batch
// again whatever the individual outcomes were.
func (r *Resolver) Sweep(ctx context.Context, batches store.BatchStore, key types.BatchKey) (Summary, error) {
	const component = "FullText"

	batch, err := batches.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	r.appLogger.Info(component, "Sweeping batch: batch=%s propositions=%d", key, len(batch.Propositions))

	summary := Summary{}
	for i, p := range batch.Propositions {
		if ctx.Err() != nil {
			break
		}
		state := r.Resolve(ctx, p)
		summary[state]++
		r.appLogger.Info(component, "Progress: batch=%s count=%d/%d id=%d state=%s", key, i+1, len(batch.Propositions), p.ID, state)
	}

	// keep whatever was resolved before a cancellation
	if err := batches.Put(context.WithoutCancel(ctx), batch); err != nil {
		return summary, fmt.Errorf("store batch %s: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	r.appLogger.Info(component, "Sweep finished: batch=%s %s", key, summary)
	return summary, nil
}
