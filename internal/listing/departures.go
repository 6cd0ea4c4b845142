package listing

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// DepartureSource is the part of the data API the departures list needs.
// *client.DataService implements it.
type DepartureSource interface {
	FileRecords(ctx context.Context, fileID int, q client.FileRecordsQuery) (*model.Page[model.DepartureRecord], error)
	Firefighters(ctx context.Context, fileID int) ([]string, error)
	DeleteRecord(ctx context.Context, id int) error
}

// SortColumns are the departure columns the backend can order by.
var SortColumns = []string{
	"nazwisko_imie",
	"stopien",
	"funkcja",
	"nr_meldunku",
	"czas_rozp_zdarzenia",
}

const (
	dateLayout            = "2006-01-02"
	promptDeleteDeparture = "Czy na pewno chcesz usunąć ten wyjazd?"
)

// DeparturesList shows the departures of one imported file, filtered by
// firefighter and date range and optionally sorted.
type DeparturesList struct {
	src  DepartureSource
	log  logrus.FieldLogger
	file model.ImportedFile

	pager  *Pager
	sort   Sort
	filter client.ExportFilter

	rows         []model.DepartureRecord
	firefighters []string
}

func NewDeparturesList(src DepartureSource, file model.ImportedFile, pageSize int, log logrus.FieldLogger) *DeparturesList {
	return &DeparturesList{
		src:   src,
		log:   orDiscard(log).WithField("file_id", file.ID),
		file:  file,
		pager: NewPager(pageSize),
	}
}

// Open loads the firefighter names used by the filter and the first page.
// Failing to load the names is logged only.
func (l *DeparturesList) Open(ctx context.Context) error {
	names, err := l.src.Firefighters(ctx, l.file.ID)
	if err != nil {
		l.log.WithError(err).Warn("load firefighters failed")
	} else {
		l.firefighters = names
	}
	return l.Load(ctx)
}

// Load fetches the current page.
func (l *DeparturesList) Load(ctx context.Context) error {
	page, err := l.src.FileRecords(ctx, l.file.ID, client.FileRecordsQuery{
		Skip:        l.pager.Offset(),
		Limit:       l.pager.Size(),
		Firefighter: l.filter.Firefighter,
		DateFrom:    l.filter.DateFrom,
		DateTo:      l.filter.DateTo,
		SortBy:      l.sort.Column,
		SortOrder:   l.sort.Order,
	})
	if err != nil {
		return errors.Wrap(err, "load departures")
	}
	l.rows = page.Records
	l.pager.Observe(len(page.Records), page.TotalCount)
	return nil
}

// SetFirefighter filters by firefighter name; "" clears the filter.
func (l *DeparturesList) SetFirefighter(ctx context.Context, name string) error {
	l.filter.Firefighter = name
	l.pager.Reset()
	return l.Load(ctx)
}

// SetDateRange filters by incident date (YYYY-MM-DD, either end optional).
// Malformed dates are rejected before any request.
func (l *DeparturesList) SetDateRange(ctx context.Context, from, to string) error {
	if err := checkDates(from, to); err != nil {
		return err
	}
	l.filter.DateFrom, l.filter.DateTo = from, to
	l.pager.Reset()
	return l.Load(ctx)
}

// Configure sets filters, sort and page without fetching; the next Open or
// Load uses them.
func (l *DeparturesList) Configure(f client.ExportFilter, s Sort, page int) error {
	if err := checkDates(f.DateFrom, f.DateTo); err != nil {
		return err
	}
	l.filter, l.sort = f, s
	l.pager.Seek(page)
	return nil
}

func checkDates(dates ...string) error {
	for _, d := range dates {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return errors.Errorf("invalid date %q, expected YYYY-MM-DD", d)
		}
	}
	return nil
}

// ClearFilters drops the firefighter and date filters and reloads.
func (l *DeparturesList) ClearFilters(ctx context.Context) error {
	l.filter = client.ExportFilter{}
	l.pager.Reset()
	return l.Load(ctx)
}

// ToggleSort applies a header click on column and reloads from the first
// page.
func (l *DeparturesList) ToggleSort(ctx context.Context, column string) error {
	l.sort.Toggle(column)
	l.pager.Reset()
	return l.Load(ctx)
}

// SetSort replaces the sort outright, used when the order comes from flags.
func (l *DeparturesList) SetSort(ctx context.Context, s Sort) error {
	l.sort = s
	l.pager.Reset()
	return l.Load(ctx)
}

func (l *DeparturesList) NextPage(ctx context.Context) (bool, error) {
	if !l.pager.Next() {
		return false, nil
	}
	return true, l.Load(ctx)
}

func (l *DeparturesList) PrevPage(ctx context.Context) (bool, error) {
	if !l.pager.Prev() {
		return false, nil
	}
	return true, l.Load(ctx)
}

func (l *DeparturesList) GoTo(ctx context.Context, page int) error {
	l.pager.Seek(page)
	return l.Load(ctx)
}

// Delete removes a departure once confirmed and reloads the page.
func (l *DeparturesList) Delete(ctx context.Context, id int, c Confirmer) (bool, error) {
	if !confirmed(c, promptDeleteDeparture) {
		return false, nil
	}
	if err := l.src.DeleteRecord(ctx, id); err != nil {
		return false, errors.Wrapf(err, "delete departure %d", id)
	}
	return true, l.Load(ctx)
}

func (l *DeparturesList) File() model.ImportedFile     { return l.file }
func (l *DeparturesList) Rows() []model.DepartureRecord { return l.rows }
func (l *DeparturesList) Firefighters() []string        { return l.firefighters }
func (l *DeparturesList) Pager() *Pager                 { return l.pager }
func (l *DeparturesList) Sort() Sort                    { return l.sort }

// Filter returns the active filters, which exports and document generation
// reuse.
func (l *DeparturesList) Filter() client.ExportFilter { return l.filter }
