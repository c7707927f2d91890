// Package paths provides utilities for locating project files.
package paths
