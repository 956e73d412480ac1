// Package wals supplies the five WALS feature tables the generator joins.
//
// Tables are named after their WALS feature, e.g. "wals-83A.csv" for the
// order of object and verb. Embedded returns the copies compiled into the
// binary; Dir reads the same file names from a directory.
package wals

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jamesainslie/go-typology/domain"
)

//go:embed data/*.csv
var embedded embed.FS

// ErrTableNotFound indicates a source has no table for a domain.
var ErrTableNotFound = errors.New("wals: table not found")

// FileName returns the table file name for d.
func FileName(d *domain.Domain) string {
	return "wals-" + d.Feature() + ".csv"
}

// Tables reads feature tables from a file system.
type Tables struct {
	fsys  fs.FS
	label string
}

// Embedded returns the tables compiled into the binary.
func Embedded() *Tables {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &Tables{fsys: sub, label: "embedded"}
}

// Dir returns tables read from dir.
func Dir(dir string) *Tables {
	return &Tables{fsys: os.DirFS(dir), label: dir}
}

// FS returns tables read from an arbitrary file system.
func FS(fsys fs.FS, label string) *Tables {
	return &Tables{fsys: fsys, label: label}
}

// String describes where the tables come from.
func (t *Tables) String() string { return t.label }

// Table returns the table name and full text for d.
func (t *Tables) Table(d *domain.Domain) (name, text string, err error) {
	name = FileName(d)
	data, err := fs.ReadFile(t.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return name, "", fmt.Errorf("%w: %s in %s", ErrTableNotFound, name, t.label)
		}
		return name, "", fmt.Errorf("reading %s from %s: %w", name, t.label, err)
	}
	return name, string(data), nil
}
