// Package server holds the HTTP server configuration.
//
// The Config struct defines the listening port, the API key that protects
// every route and the maximum accepted request body.
package server
