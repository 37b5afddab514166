// Package logger provides structured logging for seqkit services using
// zerolog.
//
// Loggers are created from a Config, tagged per component and enriched with
// request, run and trace identifiers carried on a context.Context.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("runner")
//	log.Info("pipeline finished", logger.Fields(logger.FieldPipeline, "evens", logger.FieldElements, 5))
package logger
