package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/yzays8/filmr/pkg/review"
)

var csvHeader = []string{"title", "year", "score", "review"}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

func writeCSV(w io.Writer, reviews []review.Review) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range reviews {
		if err := cw.Write([]string{r.Title, strconv.Itoa(r.Year), formatScore(r.Score), r.Body}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonDocument struct {
	Reviews *[]review.Review `json:"reviews"`
}

func writeJSON(w io.Writer, reviews []review.Review) error {
	if reviews == nil {
		reviews = []review.Review{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonDocument{Reviews: &reviews})
}

// DecodeJSON reads a document written by the JSON exporter
func DecodeJSON(r io.Reader) ([]review.Review, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	if doc.Reviews == nil {
		return nil, errors.New(`failed to decode reviews: missing "reviews" key`)
	}
	return *doc.Reviews, nil
}

func writeTXT(w io.Writer, reviews []review.Review) error {
	for _, r := range reviews {
		if _, err := fmt.Fprintf(w, "Title: %s\nYear: %d\nScore: %s\nReview:\n%s\n\n",
			r.Title, r.Year, formatScore(r.Score), r.Body); err != nil {
			return err
		}
	}
	return nil
}
