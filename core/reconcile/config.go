package reconcile

import "time"

// Config holds settings for reconciliation runs.
type Config struct {
	// User is recorded on every log entry unless a request names another user.
	User string `mapstructure:"user" default:"system"`
	// DocumentPrefix is the object prefix of stored parsed documents.
	DocumentPrefix string `mapstructure:"document_prefix" default:"parsed"`
	// ReportPrefix is the object prefix of written mismatch reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
	// CacheTTLSeconds keeps loaded companion documents in memory. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
