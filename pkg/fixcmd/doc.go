// Package fixcmd provides the batch driver for rewriting project files.
//
// It serves as the core implementation of the `csprojfix fix` command: it
// finds every project file below a directory and runs one editing session per
// file, forcing LangVersion and optionally applying or removing a settings
// table. Progress is reported to subscribers as events.
package fixcmd
