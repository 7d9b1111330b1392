// Package graph wraps the named graph endpoints (/_api/gharial).
//
// Graph definitions and the edges and vertices written through a graph are
// encoded with serialization.CamelCaseOmitNullsPolicy: untagged Go fields go
// out in lower camel case and nil fields are left out.
//
//	g, err := db.Graph.Create(ctx, graph.CreateBody{
//		Name: "social",
//		EdgeDefinitions: []graph.EdgeDefinition{
//			{Collection: "knows", From: []string{"people"}, To: []string{"people"}},
//		},
//	}, nil)
//
// A missing graph is reported as a *errors.ClientError with ErrorNum
// errors.ErrGraphNotFound.
package graph
