// Package logger builds the zap logger shared by the reconciler's commands,
// HTTP handlers and validators.
//
// Level selects the minimum level and Format selects json or console output.
// Every line carries the configured service name. WithRayID tags a logger
// with the request's ray id so that all lines written while serving one
// request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
