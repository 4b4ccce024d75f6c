package export

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"github.com/yzays8/filmr/pkg/review"
)

var sample = []review.Review{
	{Title: "パラサイト 半地下の家族", Year: 2019, Score: 4.5, Body: "line one\nline two, with \"quotes\""},
	{Title: "Unrated", Year: 1999, Score: 0, Body: "<b>kept</b> &amp; literal"},
	{Title: "Long", Year: 2001, Score: 3.8, Body: "single"},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"JSON", FormatJSON},
		{"text", FormatTXT},
		{"", FormatTXT},
		{"md", FormatMarkdown},
		{"xlsx", FormatXLSX},
		{"sqlite3", FormatSQLite},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "reviews.csv", DefaultPath(FormatCSV))
	assert.Equal(t, "reviews.json", DefaultPath(FormatJSON))
	assert.Equal(t, "reviews.txt", DefaultPath(FormatTXT))
	assert.Equal(t, "reviews.md", DefaultPath(FormatMarkdown))
	assert.Equal(t, "reviews.xlsx", DefaultPath(FormatXLSX))
	assert.Equal(t, "reviews.db", DefaultPath(FormatSQLite))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"title", "year", "score", "review"}, records[0])
	assert.Equal(t, []string{"パラサイト 半地下の家族", "2019", "4.5", "line one\nline two, with \"quotes\""}, records[1])
	assert.Equal(t, "0", records[2][2])
}

func TestWriteTXT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTXT, sample[:2]))

	want := "Title: パラサイト 半地下の家族\nYear: 2019\nScore: 4.5\nReview:\nline one\nline two, with \"quotes\"\n\n" +
		"Title: Unrated\nYear: 1999\nScore: 0\nReview:\n<b>kept</b> &amp; literal\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sample[1:2]))

	want := `{
  "reviews": [
    {
      "title": "Unrated",
      "year": 1999,
      "score": 0,
      "review": "<b>kept</b> &amp; literal"
    }
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil))
	assert.JSONEq(t, `{"reviews": []}`, buf.String())
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, Export(path, FormatJSON, sample, false))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := DecodeJSON(f)
	require.NoError(t, err)
	if diff := cmp.Diff(sample, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"items": []}`))
	assert.ErrorContains(t, err, "missing")

	_, err = DecodeJSON(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatMarkdown, sample[:1]))

	out := buf.String()
	assert.Contains(t, out, "# Filmarks Reviews")
	assert.Contains(t, out, "## パラサイト 半地下の家族 (2019)")
	assert.Contains(t, out, "- Score: 4.5")
	assert.Contains(t, out, "line one  \nline two")
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.xlsx")
	require.NoError(t, Export(path, FormatXLSX, sample, false))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet, ok := f.Sheet[xlsxSheet]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 4)

	var header []string
	for _, c := range sheet.Rows[0].Cells {
		header = append(header, c.String())
	}
	assert.Equal(t, []string{"title", "year", "score", "review"}, header)
	assert.Equal(t, "Long", sheet.Rows[3].Cells[0].String())
	assert.Equal(t, "2001", sheet.Rows[3].Cells[1].String())
	assert.Equal(t, "single", sheet.Rows[3].Cells[3].String())
}

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.db")
	require.NoError(t, Export(path, FormatSQLite, sample, false))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT title, year, score, review FROM reviews ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	var got []review.Review
	for rows.Next() {
		var r review.Review
		require.NoError(t, rows.Scan(&r.Title, &r.Year, &r.Score, &r.Body))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	if diff := cmp.Diff(sample, got); diff != "" {
		t.Errorf("sqlite rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRefusesExistingFile(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultPath(f))
			require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

			err := Export(path, f, sample, false)
			assert.ErrorIs(t, err, ErrExists)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "keep me", string(data))
		})
	}
}

func TestWriteAtomicRefusesFileCreatedDuringWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviews.txt")

	err := writeAtomic(path, false, func(tmp string) error {
		// another writer gets there first
		require.NoError(t, os.WriteFile(path, []byte("theirs"), 0644))
		return os.WriteFile(tmp, []byte("ours"), 0644)
	})
	assert.ErrorIs(t, err, ErrExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theirs", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is removed")
}

func TestExportOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, Export(path, FormatTXT, sample[2:], true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title: Long\nYear: 2001\nScore: 3.8\nReview:\nsingle\n\n", string(data))
}

func TestExportLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "reviews.csv")
	require.NoError(t, Export(path, FormatCSV, sample, false))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "reviews.csv", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteRejectsSQLiteStream(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, FormatSQLite, sample))
	assert.Error(t, Write(&buf, Format("pdf"), sample))
}
