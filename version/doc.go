// Package version reports the version of this client library.
//
// The version is read from the module build information of the binary that
// links the library. Release builds may pin it with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/arangodb/version.Version=1.2.0"
package version
