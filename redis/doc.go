// Package redis provides a Redis client built on go-redis with seqkit
// logging, a lifecycle component, and a typed JSON store used to cache
// pipeline results.
package redis
