// Package utils provides common utility functions for the invoice reconciler.
// It includes helpers for value conversion and loose scalar equality that the
// reconcile engine and the mismatch store share.
package utils
