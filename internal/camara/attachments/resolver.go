// Package attachments materializes the propositions attached (apensadas) to another one.
package attachments

import (
	"context"
	"errors"
	"fmt"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/camara/webservice"
	"github.com/farxc/envelopa-camara/internal/logger"
)

// Lister runs a ListarProposicoes query.
type Lister interface {
	ListPropositions(ctx context.Context, q webservice.ListQuery) ([]webservice.ListingEntry, error)
}

// Mapper turns a listing entry into a proposition.
type Mapper interface {
	ToProposition(ctx context.Context, entry webservice.ListingEntry) (*types.Proposition, error)
}

type Resolver struct {
	lister    Lister
	mapper    Mapper
	appLogger *logger.Logger
}

func NewResolver(lister Lister, mapper Mapper, appLogger *logger.Logger) *Resolver {
	if appLogger == nil {
		appLogger = logger.Discard()
	}
	return &Resolver{lister: lister, mapper: mapper, appLogger: appLogger}
}

// Resolve looks up each reference in order and returns the propositions that
// were found and not yet in seen. Found keys are added to seen immediately, so
// two references to the same proposition yield one record. Attachments of the
// returned propositions are not followed. A nil seen starts from an empty set.
//
// Malformed names and references the service does not know are skipped. Any
// other error, including a schema violation, is returned.
func (r *Resolver) Resolve(ctx context.Context, refs []types.AttachmentRef, seen *types.SeenSet) ([]*types.Proposition, error) {
	const component = "Attachments"

	if seen == nil {
		seen = types.NewSeenSet()
	}

	var resolved []*types.Proposition
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return resolved, err
		}

		target, err := ref.Target()
		if err != nil {
			r.appLogger.Debug(component, "Skipping attachment: name=%q err=%v", ref.Name, err)
			continue
		}

		key := target.Key()
		if seen.Contains(key) {
			continue
		}

		entries, err := r.lister.ListPropositions(ctx, webservice.ListQuery{
			Sigla:  target.Sigla,
			Number: target.Number,
			Year:   target.Year,
		})
		if errors.Is(err, webservice.ErrNotFound) || (err == nil && len(entries) == 0) {
			r.appLogger.Debug(component, "Attachment not found: name=%q", ref.Name)
			continue
		}
		if err != nil {
			return resolved, fmt.Errorf("list attachment %s: %w", key, err)
		}

		p, err := r.mapper.ToProposition(ctx, entries[0])
		if err != nil {
			return resolved, fmt.Errorf("map attachment %s: %w", key, err)
		}

		seen.Add(key)
		if pk, err := p.Key(); err == nil {
			seen.Add(pk)
		}
		resolved = append(resolved, p)
	}
	return resolved, nil
}
