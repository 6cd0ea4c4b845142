package upload

import (
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// ErrLegacyWorkbook is returned by Summarize for .xls files, which only the
// backend can read.
var ErrLegacyWorkbook = errors.New("legacy .xls workbooks cannot be summarized locally")

// SheetSummary describes one worksheet.
type SheetSummary struct {
	Name string
	// Rows counts data rows, header excluded.
	Rows   int
	Header []string
}

// Summary is a quick look at a workbook before it is sent.
type Summary struct {
	Sheets []SheetSummary
}

// Rows totals the data rows of every sheet.
func (s *Summary) Rows() int {
	n := 0
	for _, sh := range s.Sheets {
		n += sh.Rows
	}
	return n
}

// Summarize opens an .xlsx workbook and counts rows per sheet. Blank trailing
// rows are not counted.
func Summarize(path string) (*Summary, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return nil, ErrLegacyWorkbook
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	out := &Summary{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrapf(err, "read sheet %q", name)
		}
		rows = trimBlank(rows)
		sh := SheetSummary{Name: name}
		if len(rows) > 0 {
			sh.Header = rows[0]
			sh.Rows = len(rows) - 1
		}
		out.Sheets = append(out.Sheets, sh)
	}
	return out, nil
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
