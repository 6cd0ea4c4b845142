package inspect

import (
	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// Workbook reads every sheet of an .xlsx file, keeping at most maxRows data
// rows per sheet.
func Workbook(path string, maxRows int) ([]Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	var out []Table
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrapf(err, "read sheet %q", name)
		}
		t := split(rows, maxRows)
		t.Name = name
		out = append(out, t)
	}
	return out, nil
}
