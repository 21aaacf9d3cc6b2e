package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/library"
)

func TestWriteBooks(t *testing.T) {
	var buf bytes.Buffer
	rows := []library.ExportRow{
		{Title: "Dune", Author: "Herbert", ISBN: "ISBN1", Quantity: 2},
		{Title: "Emma, Vol. 1", Author: `Jane "J" Austen`, ISBN: "E1", Quantity: 0},
	}
	require.NoError(t, WriteBooks(&buf, rows))

	want := "Title,Author,ISBN,Quantity\n" +
		"Dune,Herbert,ISBN1,2\n" +
		"\"Emma, Vol. 1\",\"Jane \"\"J\"\" Austen\",E1,0\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBooksEmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBooks(&buf, nil))
	assert.Equal(t, "Title,Author,ISBN,Quantity\n", buf.String())
}

func TestSaveAndLoadBooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "books.csv")
	rows := []library.ExportRow{{Title: "Dune", Author: "Herbert", ISBN: "ISBN1", Quantity: 2}}
	require.NoError(t, SaveBooks(path, rows))

	books, err := LoadBooks(path)
	require.NoError(t, err)
	assert.Equal(t, []library.Book{{Title: "Dune", Author: "Herbert", ISBN: "ISBN1", Quantity: 2}}, books)
}

func TestSaveBooksEmptyPath(t *testing.T) {
	require.Error(t, SaveBooks("  ", nil))
}

func TestReadBooksErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "empty file"},
		{name: "wrong header", input: "Name,Author,ISBN,Quantity\n", want: "column 1"},
		{name: "bad quantity", input: "Title,Author,ISBN,Quantity\nDune,Herbert,I1,two\n", want: "line 2"},
		{name: "negative quantity", input: "Title,Author,ISBN,Quantity\nDune,Herbert,I1,-1\n", want: "invalid quantity"},
		{name: "short row", input: "Title,Author,ISBN,Quantity\nDune,Herbert\n", want: "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBooks(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadBooksMissingFile(t *testing.T) {
	_, err := LoadBooks(filepath.Join(t.TempDir(), "missing.csv"))
	require.True(t, os.IsNotExist(err))
}
