package client

import (
	"net/url"
	"strconv"
)

// SortOrder is the direction sent as sort_order.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Flip returns the opposite direction.
func (o SortOrder) Flip() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// ExportFormat selects a tabular export endpoint.
type ExportFormat string

const (
	ExportExcel ExportFormat = "excel"
	ExportCSV   ExportFormat = "csv"
)

// Ext is the file extension of the format, dot included.
func (f ExportFormat) Ext() string {
	if f == ExportCSV {
		return ".csv"
	}
	return ".xlsx"
}

// DocumentFormat selects the generated document type.
type DocumentFormat string

const (
	DocumentDOCX DocumentFormat = "docx"
	DocumentPDF  DocumentFormat = "pdf"
	DocumentHTML DocumentFormat = "html"
)

// DocumentFormats lists every format the backend can render.
var DocumentFormats = []DocumentFormat{DocumentDOCX, DocumentPDF, DocumentHTML}

// RecordsQuery filters GET /api/data/records.
type RecordsQuery struct {
	Skip   int
	Limit  int
	FileID int
	Search string
}

// Values encodes the query. Zero FileID and empty Search are omitted.
func (q RecordsQuery) Values() url.Values {
	v := paging(q.Skip, q.Limit)
	if q.FileID > 0 {
		v.Set("file_id", strconv.Itoa(q.FileID))
	}
	setIf(v, "search", q.Search)
	return v
}

// FileRecordsQuery filters GET /api/data/files/{id}/records.
type FileRecordsQuery struct {
	Skip        int
	Limit       int
	Firefighter string
	DateFrom    string
	DateTo      string
	SortBy      string
	SortOrder   SortOrder
}

// Values encodes the query. sort_order is only sent together with sort_by.
func (q FileRecordsQuery) Values() url.Values {
	v := paging(q.Skip, q.Limit)
	setIf(v, "firefighter", q.Firefighter)
	setIf(v, "date_from", q.DateFrom)
	setIf(v, "date_to", q.DateTo)
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
		order := q.SortOrder
		if order == "" {
			order = Ascending
		}
		v.Set("sort_order", string(order))
	}
	return v
}

// ExportFilter narrows a departures export or document to one firefighter
// and/or a date range.
type ExportFilter struct {
	Firefighter string
	DateFrom    string
	DateTo      string
}

// Values encodes the filter.
func (f ExportFilter) Values() url.Values {
	v := url.Values{}
	setIf(v, "firefighter", f.Firefighter)
	setIf(v, "date_from", f.DateFrom)
	setIf(v, "date_to", f.DateTo)
	return v
}

// FirefighterFilter narrows the roster by free text, unit and rank.
type FirefighterFilter struct {
	Search    string
	Jednostka string
	Stopien   string
}

// Values encodes the filter.
func (f FirefighterFilter) Values() url.Values {
	v := url.Values{}
	setIf(v, "search", f.Search)
	setIf(v, "jednostka", f.Jednostka)
	setIf(v, "stopien", f.Stopien)
	return v
}

// FirefighterQuery is a roster page request.
type FirefighterQuery struct {
	Skip  int
	Limit int
	FirefighterFilter
}

// Values encodes the query.
func (q FirefighterQuery) Values() url.Values {
	v := paging(q.Skip, q.Limit)
	for k, vals := range q.FirefighterFilter.Values() {
		v[k] = vals
	}
	return v
}

func paging(skip, limit int) url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(skip))
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
