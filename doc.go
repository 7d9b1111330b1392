// Package arangodb is a typed client for the ArangoDB HTTP API.
//
// A Client bundles one transport with the resource clients that use it:
//
//	db, err := arangodb.New(arangodb.Config{
//		Config: transport.Config{Endpoint: "http://localhost:8529", Database: "shop"},
//		Credentials: arangodb.Credentials{Type: "basic", Username: "root", Password: "secret"},
//	})
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	res, err := document.Create(ctx, db.Document, "users", User{Name: "Ada"}, nil)
//
// Every operation returns one of four error kinds: *transport.Error when the
// request could not be exchanged, *errors.ClientError for a non-success
// status, *errors.DecodeError for an unreadable success body and
// *errors.ValidationError for input rejected before sending.
package arangodb
