// Package dataset expands completed profiles into masked training rows and
// serializes a subset into the trainer's text format.
//
// A document starts with four header lines (column counts and number
// formats, column names, minimum values, maximum values) followed by six
// rows per profile. Fields are separated by one space, lines end in CRLF,
// and the CRLF after the last line is dropped.
package dataset

import (
	"strconv"
	"strings"

	"github.com/jamesainslie/go-typology/domain"
	"github.com/jamesainslie/go-typology/profile"
)

const (
	// InputFormat is the printf format the trainer uses for input values.
	InputFormat = "%.2f"

	// OutputFormat is the printf format the trainer uses for output values.
	OutputFormat = "%.2f"

	// ErrorFormat is the printf format the trainer uses for its error metric.
	ErrorFormat = "%.4f"

	// RowsPerProfile is one complete row plus one masked row per domain.
	RowsPerProfile = 1 + domain.Count

	lineEnd = "\r\n"
)

// Row is one training example.
type Row struct {
	Input  []float64
	Output []float64
}

// Encode returns the row for p as given: full encodings of every domain as
// input, collapsed encodings as output.
func Encode(p profile.Profile) Row {
	return encode(p, p)
}

// encode builds the input from in and the output from truth.
func encode(in, truth profile.Profile) Row {
	row := Row{
		Input:  make([]float64, 0, domain.InputWidth()),
		Output: make([]float64, 0, domain.OutputWidth()),
	}
	for _, d := range domain.All() {
		row.Input = append(row.Input, d.EncodeFull(in.Get(d.ID()))...)
	}
	for _, d := range domain.All() {
		row.Output = append(row.Output, d.EncodeCollapsed(truth.Get(d.ID()))...)
	}
	return row
}

// Expand returns the RowsPerProfile rows for p: the fully observed row, then
// one row per domain in ID order with that domain's input masked to unknown.
// The output of every row encodes p's true categories.
func Expand(p profile.Profile) []Row {
	rows := make([]Row, 0, RowsPerProfile)
	rows = append(rows, Encode(p))
	for _, d := range domain.All() {
		rows = append(rows, encode(p.Masked(d.ID()), p))
	}
	return rows
}

// InputColumns returns the input column names in order.
func InputColumns() []string {
	var cols []string
	for _, d := range domain.All() {
		cols = append(cols, d.InputColumns()...)
	}
	return cols
}

// OutputColumns returns the output column names in order.
func OutputColumns() []string {
	var cols []string
	for _, d := range domain.All() {
		cols = append(cols, d.OutputColumns()...)
	}
	return cols
}

// Header returns the four header lines, each CRLF-terminated.
func Header() string {
	in, out := domain.InputWidth(), domain.OutputWidth()

	var b strings.Builder
	b.WriteString(strconv.Itoa(in))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(out))
	for _, f := range []string{InputFormat, OutputFormat, ErrorFormat} {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	b.WriteString(lineEnd)

	b.WriteString(strings.Join(append(InputColumns(), OutputColumns()...), " "))
	b.WriteString(lineEnd)

	writeRepeated(&b, "0", in+out)
	writeRepeated(&b, "1", in+out)
	return b.String()
}

func writeRepeated(b *strings.Builder, v string, n int) {
	for i := range n {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v)
	}
	b.WriteString(lineEnd)
}

// AppendRow appends r as one CRLF-terminated line.
func AppendRow(buf []byte, r Row) []byte {
	first := true
	for _, vs := range [][]float64{r.Input, r.Output} {
		for _, v := range vs {
			if !first {
				buf = append(buf, ' ')
			}
			first = false
			buf = strconv.AppendFloat(buf, v, 'f', 1, 64)
		}
	}
	return append(buf, lineEnd...)
}

// Serialize renders a whole subset document.
func Serialize(profiles []profile.Profile) []byte {
	buf := make([]byte, 0, len(Header())+len(profiles)*RowsPerProfile*(domain.InputWidth()+domain.OutputWidth())*4)
	buf = append(buf, Header()...)
	for _, p := range profiles {
		for _, r := range Expand(p) {
			buf = AppendRow(buf, r)
		}
	}
	return buf[:len(buf)-len(lineEnd)]
}

// RowCount returns the number of data rows Serialize emits for n profiles.
func RowCount(n int) int {
	return n * RowsPerProfile
}
