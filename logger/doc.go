// Package logger provides structured logging for the client using zerolog.
//
// Loggers are values: the client and each transport carry their own *Logger,
// defaulting to Nop so that a library never writes to stdout unasked.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "arangodb").WithComponent("transport")
//	log.Debug("request sent", logger.Fields("method", "GET", "path", "/_api/version"))
package logger
