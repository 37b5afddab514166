// Package version reports build information for seqkit binaries.
//
// Version, commit, branch and build time are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.2.0" ./cmd/seqd
//
// Anything left unset is filled from the module's embedded VCS settings.
package version
