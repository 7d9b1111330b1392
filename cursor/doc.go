// Package cursor runs AQL queries through the cursor endpoints
// (/_api/cursor).
//
//	resp, err := cursor.Create[User](ctx, db.Cursor, cursor.CreateBody{
//		Query:     "FOR u IN users FILTER u.age > @age RETURN u",
//		BindVars:  map[string]any{"age": 21},
//		BatchSize: 100,
//	})
//
// ReadAll follows the cursor until the server reports no more batches.
package cursor
