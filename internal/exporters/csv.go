// Package exporters serializes search results for download.
package exporters

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Jananikaavya/Library-Management/internal/entities"
)

// descriptionLimit caps the description column in exports.
const descriptionLimit = 100

// csvHeader is the fixed export column order.
var csvHeader = []string{"ID", "Title", "Author", "ISBN", "Year", "Genre", "Status", "Description"}

// WriteBooksCSV renders books as CSV in the fixed column order. Null ISBN and
// year become empty cells; descriptions are truncated to 100 characters.
func WriteBooksCSV(w io.Writer, books []entities.Book) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, book := range books {
		isbn := ""
		if book.ISBN != nil {
			isbn = *book.ISBN
		}
		year := ""
		if book.PublishedYear != nil {
			year = strconv.Itoa(*book.PublishedYear)
		}
		record := []string{
			strconv.FormatUint(uint64(book.ID), 10),
			book.Title,
			book.Author,
			isbn,
			year,
			book.Genre,
			string(book.Status),
			truncate(book.Description, descriptionLimit),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// truncate caps s at limit characters, not bytes, so multibyte runes are
// never split mid-sequence.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
