// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: rejects requests that do not carry the configured X-API-Key.
//   - rayid: assigns every request a ray id, stored in the context and echoed
//     in the X-Ray-ID response header for tracing.
package middleware
