// Package apiclient composes the request pipeline shared by every resource
// client: encode a typed body under a Policy, send it through a
// transport.Transport, then either decode the success body into a typed
// result or translate the failure into an *errors.ClientError.
//
// Resource packages describe one endpoint as a Call and hand it to Send:
//
//	graph, err := apiclient.Send[GraphResult](ctx, c, apiclient.Call{
//	    Method:       http.MethodGet,
//	    Path:         apiclient.Path("_api", "gharial", name),
//	    DecodePolicy: serialization.CamelCasePolicy,
//	})
package apiclient
