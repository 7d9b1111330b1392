// Package document wraps the document endpoints (/_api/document).
//
// Operations are generic functions over the caller's document type:
//
//	res, err := document.Create(ctx, db.Document, "users", User{Name: "Ada"}, &document.CreateOptions{ReturnNew: true})
//	u, err := document.GetByKey[User](ctx, db.Document, "users", res.Key, nil)
//
// Request bodies are written with their json tags or Go field names
// (serialization.DefaultPolicy); reserved attributes such as _key must be
// declared with explicit json tags.
package document
