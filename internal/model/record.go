package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Flag holds one of the short marker columns (P, MZ, AF, retirement flag).
// Depending on how the spreadsheet was imported the backend serialises these
// as strings, numbers, booleans or null, so Flag normalises all of them to the
// string the edit form works with.
type Flag string

// UnmarshalJSON accepts any JSON scalar.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flag(s)
		return nil
	}
	switch string(data) {
	case "true", "false":
		*f = Flag(data)
		return nil
	}
	if n, err := strconv.ParseFloat(string(data), 64); err == nil {
		*f = Flag(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	*f = Flag(data)
	return nil
}

// String returns the flag text.
func (f Flag) String() string { return string(f) }

// DepartureRecord (wyjazd) ties one firefighter to one incident report. Name
// and report number cannot change after creation.
type DepartureRecord struct {
	ID                   int    `json:"id"`
	FileID               int    `json:"file_id"`
	NazwiskoImie         string `json:"nazwisko_imie"`
	Stopien              string `json:"stopien"`
	Funkcja              string `json:"funkcja"`
	NrMeldunku           string `json:"nr_meldunku"`
	CzasRozpZdarzenia    string `json:"czas_rozp_zdarzenia"`
	P                    Flag   `json:"p"`
	MZ                   Flag   `json:"mz"`
	AF                   Flag   `json:"af"`
	ZaliczonoDoEmerytury Flag   `json:"zaliczono_do_emerytury"`
	CreatedAt            string `json:"created_at,omitempty"`
	UpdatedAt            string `json:"updated_at,omitempty"`
}

// DepartureInput is the create/update payload. Every field is sent, empty or
// not, matching what the edit form submits.
type DepartureInput struct {
	NazwiskoImie         string `json:"nazwisko_imie"`
	Stopien              string `json:"stopien"`
	Funkcja              string `json:"funkcja"`
	NrMeldunku           string `json:"nr_meldunku"`
	CzasRozpZdarzenia    string `json:"czas_rozp_zdarzenia"`
	P                    string `json:"p"`
	MZ                   string `json:"mz"`
	AF                   string `json:"af"`
	ZaliczonoDoEmerytury string `json:"zaliczono_do_emerytury"`
}

// Input converts a stored record into its editable form.
func (r DepartureRecord) Input() DepartureInput {
	return DepartureInput{
		NazwiskoImie:         r.NazwiskoImie,
		Stopien:              r.Stopien,
		Funkcja:              r.Funkcja,
		NrMeldunku:           r.NrMeldunku,
		CzasRozpZdarzenia:    r.CzasRozpZdarzenia,
		P:                    r.P.String(),
		MZ:                   r.MZ.String(),
		AF:                   r.AF.String(),
		ZaliczonoDoEmerytury: r.ZaliczonoDoEmerytury.String(),
	}
}

// MeasurementRecord is the legacy SWD row shape (name/code/category/value).
// It is only read, never written, by this client.
type MeasurementRecord struct {
	ID          int      `json:"id"`
	FileID      int      `json:"file_id"`
	NazwaSWD    string   `json:"nazwa_swd"`
	KodSWD      string   `json:"kod_swd"`
	Kategoria   string   `json:"kategoria"`
	Wartosc     *float64 `json:"wartosc"`
	Jednostka   string   `json:"jednostka"`
	DataPomiaru string   `json:"data_pomiaru"`
	Uwagi       string   `json:"uwagi"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Page is a slice of rows plus the paging echo sent back by the backend.
// TotalCount is only reported by the per-file departures endpoint.
type Page[T any] struct {
	Records    []T  `json:"records"`
	FileID     int  `json:"file_id,omitempty"`
	Skip       int  `json:"skip"`
	Limit      int  `json:"limit"`
	Count      int  `json:"count"`
	TotalCount *int `json:"total_count,omitempty"`
}

// RecordMutation is returned by record create and update.
type RecordMutation struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Record  DepartureRecord `json:"record"`
}

// FileFirefighters lists the distinct firefighter names within one file.
type FileFirefighters struct {
	Firefighters []string `json:"firefighters"`
}

// Ack is the generic {success, message} body returned by deletes.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
