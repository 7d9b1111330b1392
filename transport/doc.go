// Package transport sends raw HTTP requests to an ArangoDB server.
//
// A Transport knows nothing about JSON or about ArangoDB's error envelope:
// any response the server produces, including a 404 or a 500, is a
// successful Do. Only failures to exchange a request at all (timeouts,
// refused connections, TLS failures, an open circuit) are returned as
// *Error.
//
// HTTP is the production implementation. It adds database scoping,
// authentication, TLS, optional HTTP/2, opt-in retry and circuit breaking,
// request IDs, and OpenTelemetry instrumentation:
//
//	t, err := transport.NewHTTP(transport.Config{
//	    Endpoint: "http://localhost:8529",
//	    Database: "orders",
//	    Auth:     transport.BasicAuth("root", "secret"),
//	})
//	resp, err := transport.Get(ctx, t, "/_api/version")
//	defer resp.Close()
package transport
