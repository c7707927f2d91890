// Package version reports the build version of csprojfix.
//
// [Version] is set at link time with -ldflags "-X". [Revision] falls back to
// the VCS revision recorded by the Go toolchain.
package version
