// Package tzcatalog resolves timezone names to whole-hour UTC offsets from a
// plain text table, and reads the system timezone name.
//
// A table has one entry per line. Tokens are separated by whitespace and the
// last token is the signed offset in hours:
//
//	America/New_York -5
//	Europe/Berlin 1
//
// Blank lines and lines starting with # are ignored.
package tzcatalog

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultTable is the name of the table embedded in this package.
const DefaultTable = "timezone_list.txt"

//go:embed timezone_list.txt
var tables embed.FS

var (
	// ErrNotFound is returned when no table entry matches a timezone name.
	ErrNotFound = errors.New("timezone not found")

	// ErrNoZone is returned when the system timezone file holds no name.
	ErrNoZone = errors.New("no timezone name")
)

// Catalog resolves a timezone name to its standard UTC offset in hours.
type Catalog interface {
	Offset(name string) (int, error)
}

// ParseError reports a matched table entry whose offset is not an integer.
type ParseError struct {
	Path       string
	LineNumber int
	Line       string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %q: %v", e.Path, e.LineNumber, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// File is a Catalog backed by a table file.
type File struct {
	fs   afero.Fs
	path string
}

var _ Catalog = &File{}

// NewFile returns a catalog reading the table at path from fs.
// The table is read on every lookup.
func NewFile(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

// Default returns the catalog for the table embedded in this package.
func Default() *File {
	return NewFile(afero.FromIOFS{FS: tables}, DefaultTable)
}

// Path returns the location of the table.
func (f *File) Path() string {
	return f.path
}

// Offset returns the offset of the entry whose first token equals name.
// Without such an entry, the first line containing name anywhere matches.
func (f *File) Offset(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	r, err := f.fs.Open(f.path)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to open timezone table %s", f.path)
	}
	defer r.Close()

	e, err := lookup(r, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("%w: %q in %s", ErrNotFound, name, f.path)
		}
		return 0, pkgerrors.Wrapf(err, "failed to read timezone table %s", f.path)
	}

	offset, err := parseOffset(e.fields)
	if err != nil {
		return 0, &ParseError{Path: f.path, LineNumber: e.lineNumber, Line: e.line, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"zone":   name,
		"entry":  e.fields[0],
		"exact":  e.exact,
		"offset": offset,
		"table":  f.path,
	}).Debug("resolved timezone offset")
	return offset, nil
}

// entry is a candidate table line.
type entry struct {
	lineNumber int
	line       string
	fields     []string
	exact      bool
}

func lookup(r io.Reader, name string) (entry, error) {
	scanner := bufio.NewScanner(r)

	var (
		lineNumber int
		fuzzy      *entry
	)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == name {
			return entry{lineNumber: lineNumber, line: line, fields: fields, exact: true}, nil
		}
		if fuzzy == nil && strings.Contains(line, name) {
			fuzzy = &entry{lineNumber: lineNumber, line: line, fields: fields}
		}
	}
	if err := scanner.Err(); err != nil {
		return entry{}, fmt.Errorf("scanner: %w", err)
	}
	if fuzzy == nil {
		return entry{}, ErrNotFound
	}
	return *fuzzy, nil
}

func parseOffset(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("expected at least 2 fields, got %d", len(fields))
	}
	last := fields[len(fields)-1]
	offset, err := strconv.Atoi(last)
	if err != nil {
		return 0, fmt.Errorf("offset %q: %w", last, err)
	}
	return offset, nil
}

// SystemZone reads the timezone name from a single-line file such as
// /etc/timezone. Surrounding whitespace is trimmed.
func SystemZone(fs afero.Fs, path string) (string, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to read system timezone from %s", path)
	}
	name := strings.TrimSpace(string(b))
	if name == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoZone)
	}
	return name, nil
}
