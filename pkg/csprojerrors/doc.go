// Package csprojerrors provides error definitions for project file editing.
//
// This package defines the sentinel errors returned by the loader, the
// property editor and the batch driver, so callers can match failures with
// [errors.Is] regardless of how much context has been wrapped around them.
package csprojerrors
