package exporters

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jananikaavya/Library-Management/internal/entities"
)

func TestWriteBooksCSV(t *testing.T) {
	isbn := "9780061120084"
	year := 1960
	books := []entities.Book{
		{
			ID:            1,
			Title:         "To Kill a Mockingbird",
			Author:        "Harper Lee",
			ISBN:          &isbn,
			PublishedYear: &year,
			Genre:         "Fiction",
			Status:        entities.BookStatusAvailable,
			Description:   "A classic novel.",
		},
		{
			ID:     2,
			Title:  "Untracked",
			Author: "Anonymous",
			Status: entities.BookStatusReserved,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBooksCSV(&buf, books))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Title", "Author", "ISBN", "Year", "Genre", "Status", "Description"}, records[0])
	assert.Equal(t, []string{"1", "To Kill a Mockingbird", "Harper Lee", "9780061120084", "1960", "Fiction", "Available", "A classic novel."}, records[1])
	assert.Equal(t, []string{"2", "Untracked", "Anonymous", "", "", "", "Reserved", ""}, records[2])
}

func TestWriteBooksCSV_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("a", 150)
	books := []entities.Book{{ID: 1, Title: "T", Author: "A", Description: long}}

	var buf bytes.Buffer
	require.NoError(t, WriteBooksCSV(&buf, books))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records[1][7], 100)
}

func TestWriteBooksCSV_TruncatesDescriptionByRunes(t *testing.T) {
	long := strings.Repeat("é", 120)
	books := []entities.Book{
		{ID: 1, Title: "T", Author: "A", Description: long},
		{ID: 2, Title: "U", Author: "B", Description: strings.Repeat("x", 99) + "éllo"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBooksCSV(&buf, books))

	out := buf.String()
	assert.True(t, utf8.ValidString(out))

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 100), records[1][7])
	assert.Equal(t, strings.Repeat("x", 99)+"é", records[2][7])
}

func TestWriteBooksCSV_EmptySetStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBooksCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
