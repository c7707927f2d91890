// Package projfile loads and saves MSBuild project files.
//
// A [Document] is an editing session over one file: [Open] reads and parses
// the file into a mutable [etree.Document], and [Document.Close] writes the
// (possibly modified) tree back to the same path. [Edit] wraps both in a
// scoped call that always closes, including when the edit fails.
package projfile
