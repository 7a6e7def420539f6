// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure for the HTTP port, the API key protecting every
// route and the time budget of refreshes triggered over HTTP.
package server
