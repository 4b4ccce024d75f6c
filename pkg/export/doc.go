// Package export writes a finished review session to disk.
//
// Supported formats are CSV, JSON, plain text, Markdown, XLSX and SQLite.
// Files are written to a temporary file in the destination directory and
// renamed into place, so a failed export never leaves a truncated file behind.
// JSON exports can be read back with DecodeJSON.
package export
