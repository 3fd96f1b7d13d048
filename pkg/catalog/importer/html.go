package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// FromHTML imports the first table on the page whose header names a crop column.
func FromHTML(r io.Reader, log *zap.Logger) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("parse html: %w", err)
	}
	var (
		res   Result
		found bool
		ferr  error
	)
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		rows := tableRows(tbl)
		if len(rows) < 2 {
			return true
		}
		res, ferr = FromRows(rows, log)
		if ferr != nil {
			// header did not match; try the next table
			ferr = nil
			return true
		}
		found = true
		return false
	})
	if ferr != nil {
		return Result{}, ferr
	}
	if !found {
		return Result{}, fmt.Errorf("no crop table found")
	}
	return res, nil
}

func tableRows(tbl *goquery.Selection) [][]string {
	var rows [][]string
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.Join(strings.Fields(cell.Text()), " "))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}
