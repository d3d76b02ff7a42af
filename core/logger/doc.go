// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance supporting development (console)
// and production (json) encodings. The reconciliation report is rendered
// through this logger, so the choice of encoding decides whether operators
// get colorized lines or machine-parseable output.
//
// # Run Correlation
//
// Every pipeline run is tagged with a run id. The WithRunID helper attaches
// it to the logger so all lines of one run can be correlated in an aggregate
// log store.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, runID)
//	log.Info("starting reconciliation")
package logger
