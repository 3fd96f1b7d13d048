// Package sheet reads tabular rule files (CSV or XLSX) into rows and resolves loosely
// spelled headers.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupported = errors.New("unsupported sheet format")

// ReadFile returns every row of a .csv file or of the first sheet of an .xlsx file.
func ReadFile(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadXLSX(f)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func ReadXLSX(r io.Reader) ([][]string, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return x.GetRows(sheets[0])
}

// Header maps normalized column names to indexes.
type Header map[string]int

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func NewHeader(row []string) Header {
	h := Header{}
	for i, c := range row {
		h[norm(c)] = i
	}
	return h
}

// Find returns the index of the first alias present, or -1.
func (h Header) Find(aliases ...string) int {
	for _, a := range aliases {
		if i, ok := h[norm(a)]; ok {
			return i
		}
	}
	return -1
}

// Cell guards against short rows and missing columns.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
