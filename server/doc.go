// Package server provides the HTTP server of seqd: a Gin engine served over
// HTTP/1.1 and h2c, wrapped in a standard middleware stack and managed as a
// component.
//
// # Middleware
//
// Applied at the handler level to every route (server/middleware):
//
//   - Recovery: panic recovery rendered as an error response
//   - RequestID: UUID request IDs propagated to logs
//   - RequestLogger: request logging with duration
//   - BodySizeLimit: request body size limit
//
// # Endpoints
//
// Probe endpoints live in server/endpoint (/health, /alive, /info); the
// pipeline API lives in server/api.
package server
