package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/yzays8/filmr/pkg/review"
)

// Export writes reviews to path in format f. An existing file at path is
// refused unless overwrite is set.
func Export(path string, f Format, reviews []review.Review, overwrite bool) error {
	if f == FormatSQLite {
		return writeAtomic(path, overwrite, func(tmp string) error {
			return writeSQLite(tmp, reviews)
		})
	}

	return writeAtomic(path, overwrite, func(tmp string) error {
		file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to open temporary file: %w", err)
		}

		w := bufio.NewWriter(file)
		err = Write(w, f, reviews)
		if err == nil {
			err = w.Flush()
		}
		closeErr := file.Close()

		if err != nil {
			return fmt.Errorf("failed to write %s: %w", f, err)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
		return nil
	})
}

// Write encodes reviews to w. SQLite needs a file and is rejected here.
func Write(w io.Writer, f Format, reviews []review.Review) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, reviews)
	case FormatJSON:
		return writeJSON(w, reviews)
	case FormatTXT:
		return writeTXT(w, reviews)
	case FormatMarkdown:
		return writeMarkdown(w, reviews)
	case FormatXLSX:
		return writeXLSX(w, reviews)
	case FormatSQLite:
		return fmt.Errorf("format %s can only be written to a file", f)
	default:
		return fmt.Errorf("unsupported output format %q", f)
	}
}
