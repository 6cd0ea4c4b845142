package listing

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// RosterSource is the part of the firefighters API the roster list needs.
// *client.FirefightersService implements it.
type RosterSource interface {
	List(ctx context.Context, q client.FirefighterQuery) (*model.FirefighterList, error)
	Statistics(ctx context.Context) (*model.FirefighterStatistics, error)
	Delete(ctx context.Context, id int) error
}

// FirefightersList is the roster with search, unit and rank filters and the
// statistics header.
type FirefightersList struct {
	src RosterSource
	log logrus.FieldLogger

	pager  *Pager
	filter client.FirefighterFilter

	rows  []model.Firefighter
	stats *model.FirefighterStatistics
	units []string
	ranks []string
}

func NewFirefightersList(src RosterSource, pageSize int, log logrus.FieldLogger) *FirefightersList {
	return &FirefightersList{
		src:   src,
		log:   orDiscard(log),
		pager: NewPager(pageSize),
	}
}

// Refresh reloads the page and the statistics. Statistics failures are logged
// only.
func (l *FirefightersList) Refresh(ctx context.Context) error {
	if err := l.Load(ctx); err != nil {
		return err
	}
	l.loadStatistics(ctx)
	return nil
}

// Load fetches the current page and recomputes the unit and rank choices from
// it.
func (l *FirefightersList) Load(ctx context.Context) error {
	res, err := l.src.List(ctx, client.FirefighterQuery{
		Skip:              l.pager.Offset(),
		Limit:             l.pager.Size(),
		FirefighterFilter: l.filter,
	})
	if err != nil {
		return errors.Wrap(err, "load firefighters")
	}
	l.rows = res.Firefighters
	l.units = unique(res.Firefighters, func(f model.Firefighter) string { return f.Jednostka })
	l.ranks = unique(res.Firefighters, func(f model.Firefighter) string { return f.Stopien })
	l.pager.Observe(len(res.Firefighters), nil)
	return nil
}

func (l *FirefightersList) loadStatistics(ctx context.Context) {
	stats, err := l.src.Statistics(ctx)
	if err != nil {
		l.log.WithError(err).Warn("load firefighter statistics failed")
		return
	}
	l.stats = stats
}

func (l *FirefightersList) SetSearch(ctx context.Context, q string) error {
	l.filter.Search = q
	l.pager.Reset()
	return l.Load(ctx)
}

func (l *FirefightersList) SetUnit(ctx context.Context, unit string) error {
	l.filter.Jednostka = unit
	l.pager.Reset()
	return l.Load(ctx)
}

func (l *FirefightersList) SetRank(ctx context.Context, rank string) error {
	l.filter.Stopien = rank
	l.pager.Reset()
	return l.Load(ctx)
}

// SetFilter replaces all filters at once with a single fetch.
func (l *FirefightersList) SetFilter(ctx context.Context, f client.FirefighterFilter) error {
	l.filter = f
	l.pager.Reset()
	return l.Load(ctx)
}

// Configure sets the filters and page without fetching.
func (l *FirefightersList) Configure(f client.FirefighterFilter, page int) {
	l.filter = f
	l.pager.Seek(page)
}

func (l *FirefightersList) ClearFilters(ctx context.Context) error {
	return l.SetFilter(ctx, client.FirefighterFilter{})
}

func (l *FirefightersList) NextPage(ctx context.Context) (bool, error) {
	if !l.pager.Next() {
		return false, nil
	}
	return true, l.Load(ctx)
}

func (l *FirefightersList) PrevPage(ctx context.Context) (bool, error) {
	if !l.pager.Prev() {
		return false, nil
	}
	return true, l.Load(ctx)
}

func (l *FirefightersList) GoTo(ctx context.Context, page int) error {
	l.pager.Seek(page)
	return l.Load(ctx)
}

// Delete removes a firefighter once confirmed, then reloads the page and the
// statistics.
func (l *FirefightersList) Delete(ctx context.Context, f model.Firefighter, c Confirmer) (bool, error) {
	if !confirmed(c, fmt.Sprintf("Czy na pewno chcesz usunąć strażaka: %s?", f.NazwiskoImie)) {
		return false, nil
	}
	if err := l.src.Delete(ctx, f.ID); err != nil {
		return false, errors.Wrapf(err, "delete firefighter %d", f.ID)
	}
	return true, l.Refresh(ctx)
}

func (l *FirefightersList) Rows() []model.Firefighter { return l.rows }
func (l *FirefightersList) Pager() *Pager             { return l.pager }

func (l *FirefightersList) Filter() client.FirefighterFilter { return l.filter }

// Statistics returns the last loaded statistics, or nil.
func (l *FirefightersList) Statistics() *model.FirefighterStatistics { return l.stats }

// Units lists the distinct units on the current page, in page order.
func (l *FirefightersList) Units() []string { return l.units }

// Ranks lists the distinct ranks on the current page, in page order.
func (l *FirefightersList) Ranks() []string { return l.ranks }

func unique[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
