// Package endpoint provides the probe handlers of seqd: /health, /alive and /info.
package endpoint
