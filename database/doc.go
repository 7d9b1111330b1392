// Package database manages databases (/_api/database).
//
// Create, List and Delete are served by the _system database and are sent
// there whatever database the client is scoped to. ListUser and Current run
// against the client's own database.
package database
