// Package export downloads spreadsheets and generated documents from the
// backend and hands them to a Sink. The filename comes from the response's
// Content-Disposition when present, otherwise from a dated default.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/client"
)

var (
	ErrFirefighterRequired = errors.New("⚠️ Musisz wybrać strażaka, aby wygenerować dokument!")
	ErrDateRangeRequired   = errors.New("⚠️ Musisz wybrać zakres dat (od - do), aby wygenerować dokument!")
	ErrUnsupportedFormat   = errors.New("unsupported format")
)

// TemplateFilename is the name the roster import template is saved under
// when the server does not suggest one.
const TemplateFilename = "szablon_strazacy.xlsx"

// DataExporter is the departures side of the API. *client.DataService
// implements it.
type DataExporter interface {
	Export(ctx context.Context, fileID int, format client.ExportFormat, f client.ExportFilter) (*client.Download, error)
	GenerateDocument(ctx context.Context, fileID int, format client.DocumentFormat, f client.ExportFilter) (*client.Download, error)
}

// RosterExporter is the roster side of the API. *client.FirefightersService
// implements it.
type RosterExporter interface {
	Export(ctx context.Context, format client.ExportFormat, f client.FirefighterFilter) (*client.Download, error)
	Template(ctx context.Context) (*client.Download, error)
}

// Result describes one saved download.
type Result struct {
	Filename    string
	Location    string
	Size        int
	ContentType string
	// Archived is the archive location, empty when no archive is configured
	// or archiving failed.
	Archived string
	// ArchiveURL is a temporary download link for the archived copy, set when
	// the archive can sign one.
	ArchiveURL string
	Message    string
}

// Exporter runs downloads and stores them.
type Exporter struct {
	data    DataExporter
	roster  RosterExporter
	sink    Sink
	archive Sink
	now     func() time.Time
	log     logrus.FieldLogger
}

// Option customises an Exporter.
type Option func(*Exporter)

// WithArchive stores a second copy of every download. Archive failures are
// logged and do not fail the export.
func WithArchive(s Sink) Option { return func(e *Exporter) { e.archive = s } }

// WithClock overrides the clock used for default filenames.
func WithClock(now func() time.Time) Option { return func(e *Exporter) { e.now = now } }

func WithLogger(l logrus.FieldLogger) Option { return func(e *Exporter) { e.log = l } }

func New(data DataExporter, roster RosterExporter, sink Sink, opts ...Option) *Exporter {
	e := &Exporter{
		data:   data,
		roster: roster,
		sink:   sink,
		now:    time.Now,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Departures exports the departures of one file, narrowed by f.
func (e *Exporter) Departures(ctx context.Context, fileID int, format client.ExportFormat, f client.ExportFilter) (*Result, error) {
	if format != client.ExportExcel && format != client.ExportCSV {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	dl, err := e.data.Export(ctx, fileID, format, f)
	if err != nil {
		return nil, errors.Wrap(err, "export departures")
	}
	res, err := e.store(ctx, dl, e.dated("wyjazdy", format.Ext()))
	if err != nil {
		return nil, err
	}
	res.Message = fmt.Sprintf("Plik %s został pobrany pomyślnie!", res.Filename)
	return res, nil
}

// Firefighters exports the roster, narrowed by f.
func (e *Exporter) Firefighters(ctx context.Context, format client.ExportFormat, f client.FirefighterFilter) (*Result, error) {
	if format != client.ExportExcel && format != client.ExportCSV {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	dl, err := e.roster.Export(ctx, format, f)
	if err != nil {
		return nil, errors.Wrap(err, "export firefighters")
	}
	res, err := e.store(ctx, dl, e.dated("strazacy", format.Ext()))
	if err != nil {
		return nil, err
	}
	res.Message = fmt.Sprintf("Plik %s został pobrany pomyślnie!", res.Filename)
	return res, nil
}

// Template downloads the empty roster workbook.
func (e *Exporter) Template(ctx context.Context) (*Result, error) {
	dl, err := e.roster.Template(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "download template")
	}
	res, err := e.store(ctx, dl, TemplateFilename)
	if err != nil {
		return nil, err
	}
	res.Message = fmt.Sprintf("Plik %s został pobrany pomyślnie!", res.Filename)
	return res, nil
}

// Document generates the departures card of one firefighter. A firefighter
// and both ends of the date range are required; without them no request is
// sent.
func (e *Exporter) Document(ctx context.Context, fileID int, format client.DocumentFormat, f client.ExportFilter) (*Result, error) {
	if err := CheckDocument(f); err != nil {
		return nil, err
	}
	switch format {
	case client.DocumentDOCX, client.DocumentPDF, client.DocumentHTML:
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	dl, err := e.data.GenerateDocument(ctx, fileID, format, f)
	if err != nil {
		return nil, errors.Wrap(err, "generate document")
	}
	res, err := e.store(ctx, dl, e.dated("karta_wyjazdow", "."+string(format)))
	if err != nil {
		return nil, err
	}
	res.Message = fmt.Sprintf("✅ Dokument %s został wygenerowany pomyślnie!", res.Filename)
	return res, nil
}

type documentRequest struct {
	Firefighter string `validate:"notblank"`
	DateFrom    string `validate:"notblank"`
	DateTo      string `validate:"notblank"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}()

// CheckDocument reports the first missing document precondition.
func CheckDocument(f client.ExportFilter) error {
	err := validate.Struct(documentRequest{Firefighter: f.Firefighter, DateFrom: f.DateFrom, DateTo: f.DateTo})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Firefighter" {
		return ErrFirefighterRequired
	}
	return ErrDateRangeRequired
}

// DefaultFilename is prefix_YYYY-MM-DD plus ext, dated in UTC.
func DefaultFilename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s%s", prefix, now.UTC().Format("2006-01-02"), ext)
}

func (e *Exporter) dated(prefix, ext string) string {
	return DefaultFilename(prefix, ext, e.now())
}

func (e *Exporter) store(ctx context.Context, dl *client.Download, fallback string) (*Result, error) {
	name := dl.Filename
	if name == "" {
		name = fallback
	}
	loc, err := e.sink.Save(ctx, name, bytes.NewReader(dl.Data), int64(len(dl.Data)), dl.ContentType)
	if err != nil {
		return nil, errors.Wrapf(err, "save %s", name)
	}
	res := &Result{
		Filename:    name,
		Location:    loc,
		Size:        len(dl.Data),
		ContentType: dl.ContentType,
	}
	if e.archive != nil {
		res.Archived = e.archiveCopy(ctx, name, dl)
		res.ArchiveURL = e.archiveLink(ctx, res.Archived)
	}
	return res, nil
}

func (e *Exporter) archiveCopy(ctx context.Context, name string, dl *client.Download) string {
	var r io.Reader = bytes.NewReader(dl.Data)
	loc, err := e.archive.Save(ctx, name, r, int64(len(dl.Data)), dl.ContentType)
	if err != nil {
		e.log.WithError(err).WithField("filename", name).Warn("archive copy failed")
		return ""
	}
	return loc
}

func (e *Exporter) archiveLink(ctx context.Context, loc string) string {
	l, ok := e.archive.(Linker)
	if !ok || loc == "" {
		return ""
	}
	u, err := l.Link(ctx, loc)
	if err != nil {
		e.log.WithError(err).WithField("location", loc).Warn("sign archive link failed")
		return ""
	}
	return u
}

// Describe turns an export error into the message shown to the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFirefighterRequired), errors.Is(err, ErrDateRangeRequired):
		return err.Error()
	default:
		return "❌ Błąd eksportu: " + client.Detail(err)
	}
}
