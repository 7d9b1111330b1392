// Package util holds small generic helpers shared by the resource clients,
// mainly for the optional pointer fields of request options:
//
//	opts := &document.UpdateOptions{KeepNull: util.Ptr(false)}
package util
