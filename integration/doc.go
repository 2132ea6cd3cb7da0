// Package integration contains the end-to-end smoke tests for cigen. Tests in
// this package build the binary and run it against real directory trees,
// with the process working directory as the scan root.
//
// Run with: go test ./integration/... -v -timeout 60s
package integration
