// Package upload implements the two spreadsheet imports: departures files and
// the firefighter roster. Only the extension is checked locally; the backend
// parses the workbook and owns the import as a whole.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-faster/errors"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// Extensions lists the accepted spreadsheet extensions.
var Extensions = []string{".xlsx", ".xls"}

var (
	// ErrNoFile is returned by Submit before a file is selected.
	ErrNoFile = errors.New("Wybierz plik Excel (.xlsx)")
	// ErrExtension is returned by Select for non-spreadsheet files.
	ErrExtension = errors.New("Nieobsługiwany typ pliku, dozwolone: .xlsx, .xls")
)

// Selection is the one file chosen for import.
type Selection struct {
	Path string
	Name string
	Size int64
}

// SizeMB formats the size the way the drop zone shows it.
func (s Selection) SizeMB() string {
	return fmt.Sprintf("%.2f MB", float64(s.Size)/1024/1024)
}

// picker holds at most one selected file. Selecting again replaces it.
type picker struct {
	sel *Selection
}

// Select picks path for import after checking its extension.
func (p *picker) Select(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(Extensions, ext) {
		return errors.Wrapf(ErrExtension, "%s", filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "stat upload file")
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory", path)
	}
	p.sel = &Selection{Path: path, Name: filepath.Base(path), Size: info.Size()}
	return nil
}

// Clear drops the selection.
func (p *picker) Clear() { p.sel = nil }

// Selected returns the current selection, or nil.
func (p *picker) Selected() *Selection { return p.sel }

func (p *picker) open() (*os.File, *Selection, error) {
	if p.sel == nil {
		return nil, nil, ErrNoFile
	}
	f, err := os.Open(p.sel.Path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open upload file")
	}
	return f, p.sel, nil
}

// DeparturesUploader sends a departures workbook. *client.FilesService
// implements it.
type DeparturesUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*model.UploadResult, error)
}

// DeparturesUpload imports one departures workbook as a new file.
type DeparturesUpload struct {
	picker
	files     DeparturesUploader
	onSuccess func(model.UploadResult)
}

func NewDeparturesUpload(files DeparturesUploader) *DeparturesUpload {
	return &DeparturesUpload{files: files}
}

// OnSuccess registers the callback run after a successful import.
func (u *DeparturesUpload) OnSuccess(fn func(model.UploadResult)) { u.onSuccess = fn }

// Submit uploads the selected file and returns the success message. The
// selection is cleared on success only.
func (u *DeparturesUpload) Submit(ctx context.Context) (string, error) {
	f, sel, err := u.open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	res, err := u.files.Upload(ctx, sel.Name, f)
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", sel.Name)
	}
	u.Clear()
	if u.onSuccess != nil {
		u.onSuccess(*res)
	}
	filename := res.Filename
	if filename == "" {
		filename = sel.Name
	}
	return fmt.Sprintf("Sukces! Zaimportowano %d rekordów z pliku %s", res.RecordsImported, filename), nil
}

// RosterImporter bulk-creates firefighters. *client.FirefightersService
// implements it.
type RosterImporter interface {
	Import(ctx context.Context, filename string, r io.Reader) (*model.ImportResult, error)
}

// FirefightersImport imports a roster workbook.
type FirefightersImport struct {
	picker
	roster    RosterImporter
	onSuccess func(model.ImportResult)
}

func NewFirefightersImport(roster RosterImporter) *FirefightersImport {
	return &FirefightersImport{roster: roster}
}

func (u *FirefightersImport) OnSuccess(fn func(model.ImportResult)) { u.onSuccess = fn }

// Submit uploads the selected roster and returns the import report.
func (u *FirefightersImport) Submit(ctx context.Context) (string, error) {
	f, sel, err := u.open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	res, err := u.roster.Import(ctx, sel.Name, f)
	if err != nil {
		return "", errors.Wrapf(err, "import %s", sel.Name)
	}
	u.Clear()
	if u.onSuccess != nil {
		u.onSuccess(*res)
	}
	return Report(*res), nil
}

// maxReportedErrors caps how many per-row errors Report lists.
const maxReportedErrors = 5

// Report renders an import result: created count, skipped count when
// non-zero, then up to five row errors and how many more were left out.
func Report(res model.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sukces! Zaimportowano %d strażaków", res.CreatedCount)
	if res.SkippedCount > 0 {
		fmt.Fprintf(&b, "\n\nPominięto %d rekordów", res.SkippedCount)
	}
	if n := len(res.Errors); n > 0 {
		shown := res.Errors[:min(n, maxReportedErrors)]
		b.WriteString("\n\nBłędy:\n")
		b.WriteString(strings.Join(shown, "\n"))
		if n > maxReportedErrors {
			fmt.Fprintf(&b, "\n... i %d więcej", n-maxReportedErrors)
		}
	}
	return b.String()
}

// Describe turns a Submit or Select error into the message shown to the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFile):
		return ErrNoFile.Error()
	case errors.Is(err, ErrExtension):
		return err.Error()
	default:
		return "Błąd: " + client.Detail(err)
	}
}
