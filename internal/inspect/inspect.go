// Package inspect previews downloaded artefacts locally: spreadsheets as
// their first rows, CSV exports decoded to UTF-8, PDF documents as text.
package inspect

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// Kind is the artefact type a preview was built from.
type Kind string

const (
	KindWorkbook Kind = "xlsx"
	KindCSV      Kind = "csv"
	KindPDF      Kind = "pdf"
)

// DefaultRows is how many data rows a table preview keeps per sheet.
const DefaultRows = 10

var ErrUnsupported = errors.New("unsupported file type")

// Table is one sheet, or the whole CSV file.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
	// Total counts data rows, including those cut from Rows.
	Total int
}

// Preview is the result of File.
type Preview struct {
	Path   string
	Kind   Kind
	Tables []Table
	Text   string
	Pages  int
	// Shown is the number of pages included in Text.
	Shown int
}

// File previews the artefact at path, choosing the reader by extension.
// maxRows <= 0 means DefaultRows.
func File(path string, maxRows int) (*Preview, error) {
	if maxRows <= 0 {
		maxRows = DefaultRows
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		tables, err := Workbook(path, maxRows)
		if err != nil {
			return nil, err
		}
		return &Preview{Path: path, Kind: KindWorkbook, Tables: tables}, nil
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open csv")
		}
		defer f.Close()
		t, err := CSV(f, maxRows)
		if err != nil {
			return nil, err
		}
		t.Name = filepath.Base(path)
		return &Preview{Path: path, Kind: KindCSV, Tables: []Table{*t}}, nil
	case ".pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read pdf")
		}
		doc, err := PDF(data)
		if err != nil {
			return nil, err
		}
		return &Preview{
			Path:  path,
			Kind:  KindPDF,
			Text:  doc.Text(maxRows),
			Pages: len(doc.Pages),
			Shown: min(maxRows, len(doc.Pages)),
		}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupported, "%s", filepath.Base(path))
	}
}

func split(rows [][]string, maxRows int) Table {
	rows = trimBlank(rows)
	var t Table
	if len(rows) == 0 {
		return t
	}
	t.Header = rows[0]
	data := rows[1:]
	t.Total = len(data)
	if len(data) > maxRows {
		data = data[:maxRows]
	}
	t.Rows = data
	return t
}

func trimBlank(rows [][]string) [][]string {
	for len(rows) > 0 && blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
