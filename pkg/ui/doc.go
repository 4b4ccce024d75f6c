// Package ui handles terminal output: colored status lines, the per-page
// scrape progress display and the end-of-run summary table.
package ui
