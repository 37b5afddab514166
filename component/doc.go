// Package component manages the lifecycle of the long-lived parts of a
// seqkit service: telemetry providers, the definition catalog and the HTTP
// server.
//
// Components are registered in dependency order, started in that order and
// stopped in reverse. Their health is aggregated into an
// observability.ServiceHealth for the /health endpoint.
package component
