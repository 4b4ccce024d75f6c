package export

import (
	"io"

	"github.com/tealeg/xlsx/v2"
	"github.com/yzays8/filmr/pkg/review"
)

const xlsxSheet = "reviews"

func writeXLSX(w io.Writer, reviews []review.Review) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(xlsxSheet)
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range csvHeader {
		header.AddCell().SetString(h)
	}

	for _, r := range reviews {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Title)
		row.AddCell().SetInt(r.Year)
		row.AddCell().SetFloat(r.Score)
		row.AddCell().SetString(r.Body)
	}

	return f.Write(w)
}
