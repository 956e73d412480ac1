// Package table parses WALS value tables into raw records.
//
// A table is comma-separated text: one header line followed by one row per
// value. Fields are split on every comma; quoting is not interpreted, which
// matches how the tables are exported.
package table

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FieldCount is the number of positional fields in a table row.
const FieldCount = 10

// KeyLength is the number of trailing identifier runes that form a join key.
const KeyLength = 3

// Sentinel errors for malformed input.
var (
	// ErrMalformedRow indicates a row with fewer than FieldCount fields.
	ErrMalformedRow = errors.New("table: malformed row")

	// ErrMalformedIdentifier indicates an identifier too short to carry a join key.
	ErrMalformedIdentifier = errors.New("table: malformed identifier")
)

// Record is one table row. Only ID and DomainElementKey are interpreted; the
// other fields are carried through untouched.
type Record struct {
	Confidence        string
	Description       string
	DomainElementKey  string
	Frequency         string
	ID                string
	JSONData          string
	MarkupDescription string
	Name              string
	PK                string
	ValueSetKey       string

	// Table and Line locate the row for error reporting. Line is 1-based.
	Table string
	Line  int
}

// JoinKey returns the last KeyLength runes of the NFC-normalized identifier.
func (r Record) JoinKey() (string, error) {
	id := []rune(norm.NFC.String(r.ID))
	if len(id) < KeyLength {
		return "", fmt.Errorf("%w: %s line %d: identifier %q shorter than %d characters",
			ErrMalformedIdentifier, r.Table, r.Line, r.ID, KeyLength)
	}
	return string(id[len(id)-KeyLength:]), nil
}

// ParseRecord maps split fields to a Record by position. Fields past
// FieldCount are ignored.
func ParseRecord(fields []string) (Record, error) {
	if len(fields) < FieldCount {
		return Record{}, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRow, len(fields), FieldCount)
	}
	return Record{
		Confidence:        fields[0],
		Description:       fields[1],
		DomainElementKey:  fields[2],
		Frequency:         fields[3],
		ID:                fields[4],
		JSONData:          fields[5],
		MarkupDescription: fields[6],
		Name:              fields[7],
		PK:                fields[8],
		ValueSetKey:       fields[9],
	}, nil
}

// Parse returns a lazy sequence of the records in text. The header line is
// skipped, as are empty lines. Iteration stops after the first error, which
// wraps ErrMalformedRow and names the table and line.
func Parse(name, text string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		lineNo := 0
		for line := range strings.Lines(text) {
			lineNo++
			if lineNo == 1 {
				continue
			}

			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if line == "" {
				continue
			}

			rec, err := ParseRecord(strings.Split(line, ","))
			if err != nil {
				yield(Record{}, fmt.Errorf("%s line %d: %w", name, lineNo, err))
				return
			}
			rec.Table = name
			rec.Line = lineNo
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Collect parses the whole table into memory.
func Collect(name, text string) ([]Record, error) {
	var records []Record
	for rec, err := range Parse(name, text) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
