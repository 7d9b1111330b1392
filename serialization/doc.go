// Package serialization turns typed request bodies into wire JSON and
// response streams into typed results under an explicit Policy.
//
// It is the single place where field naming and null handling are decided,
// so every endpoint applies the same rules:
//
//   - Fields with an explicit json tag name are written verbatim. Reserved
//     fields (_key, _id, _rev, _from, _to, _oldRev) are always declared this
//     way and are never renamed; when empty they are left out so the server
//     can assign them.
//   - Untagged fields are written as the Go field name, or in lower camel
//     case when Policy.CamelCase is set.
//   - Policy.OmitNulls drops nil pointers, maps, slices and interfaces
//     instead of writing them as null. Servers treat an absent field as
//     "leave unchanged" and an explicit null as "clear".
//
// Decoding ignores unknown fields, matches untagged fields case-insensitively
// and always closes the response stream.
package serialization
