// Package observability sets up OpenTelemetry tracing and metrics export
// for applications using the client.
//
// The transport instruments every request through the global otel
// providers, so installing providers here is all that is needed:
//
//	shutdown, err := observability.Init(ctx, observability.Config{
//		Enabled:     true,
//		ServiceName: "orders",
//		Endpoint:    "localhost:4318",
//		Insecure:    true,
//	}, log)
//	defer shutdown(ctx)
//
// Health reports are produced by arangodb.Client.CheckHealth.
package observability
