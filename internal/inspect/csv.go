package inspect

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode returns data as UTF-8. A UTF-8 byte order mark is dropped; input
// that is not valid UTF-8 is read as Windows-1250, the code page Polish
// Excel writes CSV in.
func Decode(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
		if err != nil {
			return nil, errors.Wrap(err, "strip bom")
		}
		return out, nil
	}
	out, _, err := transform.Bytes(charmap.Windows1250.NewDecoder(), data)
	if err != nil {
		return nil, errors.Wrap(err, "decode windows-1250")
	}
	return out, nil
}

// Delimiter guesses the separator from the first line: a semicolon when it
// occurs more often than a comma.
func Delimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

// CSV reads an export, keeping at most maxRows data rows.
func CSV(r io.Reader, maxRows int) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	data, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = Delimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}
	t := split(rows, maxRows)
	return &t, nil
}
