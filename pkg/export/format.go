package export

import (
	"fmt"
	"strings"
)

// Format names an output encoding
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatTXT      Format = "txt"
	FormatMarkdown Format = "markdown"
	FormatXLSX     Format = "xlsx"
	FormatSQLite   Format = "sqlite"
)

// Formats lists every supported format
var Formats = []Format{FormatCSV, FormatJSON, FormatTXT, FormatMarkdown, FormatXLSX, FormatSQLite}

// ParseFormat maps a flag or config value to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "txt", "text", "plain", "":
		return FormatTXT, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Ext returns the file extension used for the format, without the dot
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatSQLite:
		return "db"
	default:
		return string(f)
	}
}

// DefaultPath returns the output path used when none is given
func DefaultPath(f Format) string {
	return "reviews." + f.Ext()
}
