// Package collection wraps the collection endpoints (/_api/collection).
package collection
