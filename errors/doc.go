// Package errors provides the structured error type shared by seqkit packages.
// Every error carries a machine-readable code and a recommended HTTP status,
// so the same value can be returned from library calls and rendered by the server.
package errors
