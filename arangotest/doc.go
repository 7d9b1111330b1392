// Package arangotest provides an in-memory fake of the ArangoDB REST API for
// tests.
//
//	srv := arangotest.New(t, arangotest.WithDatabases("shop"))
//	db, err := arangodb.New(arangodb.Config{Config: transport.Config{Endpoint: srv.URL(), Database: "shop"}})
//
// It covers databases, collections, documents, named graphs, simple cursors
// and stream transaction bookkeeping. Queries are limited to the form
// "FOR x IN collection RETURN x". Writes inside a stream transaction are
// applied immediately and are not rolled back on abort.
package arangotest
