// Package reconcile verifies that a document-to-relational migration did not
// silently drop or duplicate records.
//
// After the loading stage finishes, every source collection is compared
// against its destination table by population count. The comparison is driven
// by a Registry of declarative mappings rather than table-specific branching:
// each mapping names the collection, the table, and a comparison mode.
//
// # Comparison Modes
//
// Direct mode compares the literal destination row count against the source
// document count. Distinct mode exists for exploded tables, where one source
// document is flattened into many rows sharing the original identifier;
// comparing raw row counts there would always mismatch by the average array
// length. Distinct mode counts distinct values of the mapping's DistinctKey,
// restoring the original-document grain before comparing.
//
// # Engine
//
// The Engine obtains both counts through the SourceCounter and DestCounter
// interfaces, computes the delta, and produces one Verdict per mapping. A
// counting failure is converted into an errored verdict for that mapping only
// and never blocks the rest of the pass. Verdicts are always emitted in
// registry order, even when mappings are counted concurrently, so reports are
// deterministic and diffable across runs.
//
// # Usage
//
//	engine := &reconcile.Engine{Source: srcCounter, Dest: dstCounter, Timeout: 30 * time.Second}
//	verdicts, err := engine.ReconcileAll(ctx, reconcile.DefaultRegistry())
//	if err != nil {
//	    return err // malformed registry, nothing was counted
//	}
//	reconcile.EmitAll(&reconcile.LogSink{Log: log}, verdicts)
//	if !reconcile.Clean(verdicts) {
//	    os.Exit(1)
//	}
package reconcile
