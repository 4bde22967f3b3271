// Package config loads the service configuration.
//
// Values come from environment variables, optionally seeded from a .env file,
// and fall back to the 'default' struct tags of each section:
//   - Server: HTTP port, API key and body limit
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials and bucket
//   - Log: level and format
//   - Reconcile: acting user, object prefixes and document cache TTL
//
// Nested keys map to upper-case variables joined by underscores, so
// reconcile.cache_ttl_seconds is read from RECONCILE_CACHE_TTL_SECONDS.
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
