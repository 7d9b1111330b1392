// Package transaction runs JavaScript transactions and manages stream
// transactions (/_api/transaction).
//
// Requests made with a context returned by WithID run inside the stream
// transaction:
//
//	st, err := db.Transaction.Begin(ctx, transaction.BeginBody{
//		Collections: transaction.Collections{Write: []string{"users"}},
//	})
//	tctx := transaction.WithID(ctx, st.ID)
//	_, err = document.Create(tctx, db.Document, "users", u, nil)
//	_, err = db.Transaction.Commit(ctx, st.ID)
package transaction
