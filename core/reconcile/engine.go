package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// SourceCounter counts documents in a source collection. A nil filter means
// all documents. Implementations must distinguish a missing collection
// (KindNotFound) from an empty one.
type SourceCounter interface {
	Count(ctx context.Context, collection string, filter map[string]any) (int64, error)
}

// DestCounter counts rows in a destination table. In distinct mode the count
// is taken over distinct values of distinctKey. Implementations must report a
// missing table or key as KindSchema rather than zero.
type DestCounter interface {
	Count(ctx context.Context, table string, mode Mode, distinctKey string) (int64, error)
}

// Engine compares source and destination populations mapping by mapping.
// It is read-only with respect to both stores.
type Engine struct {
	// Source counts the document store side.
	Source SourceCounter

	// Dest counts the relational store side.
	Dest DestCounter

	// Timeout bounds each individual store call. A call that exceeds it is
	// reported as a connectivity failure for that mapping only. Zero means
	// no per-call timeout.
	Timeout time.Duration

	// Workers is the number of mappings counted concurrently. Values below
	// two process mappings sequentially. Emitted verdict order is registry
	// order regardless of execution order.
	Workers int
}

// ReconcileAll reconciles every mapping in the registry and returns one
// verdict per mapping in registry order. Counting failures become errored
// verdicts and never stop the remaining mappings; only a malformed registry
// aborts the pass, before any store is contacted.
func (e *Engine) ReconcileAll(ctx context.Context, reg *Registry) ([]Verdict, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	mappings := reg.Mappings()
	verdicts := make([]Verdict, len(mappings))

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}

	// Each slot is written exactly once at the mapping's registry index, so
	// concurrent execution needs no reordering step afterwards.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range mappings {
		i, m := i, m
		g.Go(func() error {
			verdicts[i] = e.reconcileOne(gctx, m)
			return nil
		})
	}
	_ = g.Wait() // counting failures land in verdicts, not here

	return verdicts, nil
}

// reconcileOne runs the per-mapping sequence: count source, count
// destination, classify. Any counting failure short-circuits to a terminal
// errored verdict.
func (e *Engine) reconcileOne(ctx context.Context, m Mapping) Verdict {
	src, err := e.countSource(ctx, m)
	if err != nil {
		return erroredVerdict(m, 0, Coerce(m.Source, err))
	}

	dst, err := e.countDest(ctx, m)
	if err != nil {
		return erroredVerdict(m, src.Count, Coerce(m.Dest, err))
	}

	v := Verdict{
		Mapping:     m,
		SourceCount: src.Count,
		DestCount:   dst.Count,
		Delta:       dst.Count - src.Count,
	}
	// Strict equality, no tolerance band.
	if v.Delta == 0 {
		v.Status = StatusMatch
	} else {
		v.Status = StatusMismatch
	}
	v.Detail = detail(m, v.SourceCount, v.DestCount, v.Delta)
	return v
}

func (e *Engine) countSource(ctx context.Context, m Mapping) (CountResult, error) {
	ctx, cancel := e.callContext(ctx)
	defer cancel()

	n, err := e.Source.Count(ctx, m.Source, m.Filter)
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{
		Entity:     m.Source,
		Store:      StoreSource,
		Count:      n,
		FilterDesc: describeFilter(m.Filter),
	}, nil
}

func (e *Engine) countDest(ctx context.Context, m Mapping) (CountResult, error) {
	ctx, cancel := e.callContext(ctx)
	defer cancel()

	n, err := e.Dest.Count(ctx, m.Dest, m.Mode, m.DistinctKey)
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Entity: m.Dest, Store: StoreDestination, Count: n}, nil
}

func (e *Engine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Timeout > 0 {
		return context.WithTimeout(ctx, e.Timeout)
	}
	return context.WithCancel(ctx)
}

func erroredVerdict(m Mapping, sourceCount int64, err *StoreError) Verdict {
	return Verdict{
		Mapping:     m,
		SourceCount: sourceCount,
		Status:      StatusErrored,
		Err:         err,
		Detail:      fmt.Sprintf("%s -> %s: could not count: %v", m.Source, m.Dest, err),
	}
}

// detail renders the triage line: both counts, the mode used, and whether a
// mismatch is a surplus (usually duplicate inserts) or a deficit (usually
// dropped or over-filtered records).
func detail(m Mapping, sourceCount, destCount, delta int64) string {
	mode := string(ModeDirect)
	if m.Mode == ModeDistinct {
		mode = fmt.Sprintf("distinct %s", m.DistinctKey)
	}

	line := fmt.Sprintf("%s -> %s: source=%d dest=%d (%s) delta=%+d",
		m.Source, m.Dest, sourceCount, destCount, mode, delta)

	switch {
	case delta > 0:
		return line + "; surplus in destination, likely duplicate inserts"
	case delta < 0:
		return line + "; deficit in destination, likely dropped records"
	default:
		return line
	}
}

func describeFilter(filter map[string]any) string {
	if len(filter) == 0 {
		return ""
	}
	data, err := json.Marshal(filter)
	if err != nil {
		return fmt.Sprintf("%v", filter)
	}
	return string(data)
}
