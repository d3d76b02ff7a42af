package reconcile

import (
	"go.uber.org/zap"
)

// Sink consumes verdicts in emission order. Implementations render them for
// operators or retain them for archival.
type Sink interface {
	// Emit consumes one verdict.
	Emit(v Verdict)

	// Finish is called once after the last verdict with the pass summary.
	Finish(s Summary)
}

// EmitAll feeds a verdict sequence through a sink in order, then finishes
// with the summary.
func EmitAll(sink Sink, verdicts []Verdict) {
	for _, v := range verdicts {
		sink.Emit(v)
	}
	sink.Finish(Summarize(verdicts))
}

// LogSink renders verdicts as structured log lines: Info for matches, Warn
// for mismatches, Error for mappings that could not be counted. The three
// levels keep "we could not check" visually distinct from "we checked and
// it's wrong".
type LogSink struct {
	Log *zap.Logger
}

func (s *LogSink) Emit(v Verdict) {
	fields := []zap.Field{
		zap.String("collection", v.Mapping.Source),
		zap.String("table", v.Mapping.Dest),
		zap.String("mode", string(v.Mapping.Mode)),
		zap.Int64("source_count", v.SourceCount),
		zap.Int64("dest_count", v.DestCount),
		zap.Int64("delta", v.Delta),
	}

	switch v.Status {
	case StatusMismatch:
		s.Log.Warn("row count mismatch", append(fields, zap.String("detail", v.Detail))...)
	case StatusErrored:
		s.Log.Error("count failed",
			append(fields, zap.String("kind", string(v.Err.Kind)), zap.Error(v.Err))...)
	default:
		s.Log.Info("row count matches", fields...)
	}
}

func (s *LogSink) Finish(sum Summary) {
	s.Log.Info("reconciliation completed",
		zap.Int("mappings", sum.Total),
		zap.Int("matched", sum.Matched),
		zap.Int("mismatched", sum.Mismatched),
		zap.Int("errored", sum.Errored),
	)
}

// CollectSink retains verdicts in emission order. Used by the report archiver
// and by tests.
type CollectSink struct {
	Verdicts []Verdict
	Summary  Summary
}

func (s *CollectSink) Emit(v Verdict) { s.Verdicts = append(s.Verdicts, v) }

func (s *CollectSink) Finish(sum Summary) { s.Summary = sum }
