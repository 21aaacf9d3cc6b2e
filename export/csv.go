// Package export writes the book catalog to CSV and reads it back for
// seeding a fresh catalog.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"library-catalog/library"
)

// ErrBadHeader is returned when a seed file does not start with the
// Title,Author,ISBN,Quantity header.
var ErrBadHeader = errors.New("unexpected csv header")

// WriteBooks writes the header and one record per row.
func WriteBooks(w io.Writer, rows []library.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(library.ExportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveBooks writes rows to path, creating parent directories as needed.
func SaveBooks(path string, rows []library.ExportRow) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	path = filepath.Clean(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteBooks(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadBooks parses a catalog CSV in export format.
func ReadBooks(r io.Reader) ([]library.Book, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(library.ExportHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: %w", ErrBadHeader)
	}
	if err != nil {
		return nil, err
	}
	for i, want := range library.ExportHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("column %d is %q, want %q: %w", i+1, header[i], want, ErrBadHeader)
		}
	}

	var books []library.Book
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		qty, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil || qty < 0 {
			return nil, fmt.Errorf("line %d: invalid quantity %q", line, rec[3])
		}
		books = append(books, library.Book{Title: rec[0], Author: rec[1], ISBN: rec[2], Quantity: qty})
	}
	return books, nil
}

// LoadBooks opens path and parses it with ReadBooks.
func LoadBooks(path string) ([]library.Book, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBooks(f)
}
