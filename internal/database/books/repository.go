// Package books provides database operations for the book catalog, including
// the search query builder used by the search endpoint and the CSV export.
package books

import (
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

// SearchField names the book column a free-text search term is matched against.
type SearchField string

const (
	SearchByTitle  SearchField = "title"
	SearchByAuthor SearchField = "author"
	SearchByGenre  SearchField = "genre"
	SearchByYear   SearchField = "year"
	SearchByISBN   SearchField = "isbn"
)

// Sort directives accepted by the search endpoint. Anything else leaves the
// result in store order.
const (
	SortTitle     = "title"      // title ASC
	SortTitleDesc = "title_desc" // title DESC
	SortAuthor    = "author"     // author ASC, title ASC
	SortYear      = "year"       // published_year DESC, title ASC
	SortYearAsc   = "year_asc"   // published_year ASC, title ASC
	SortAdded     = "added"      // created_date DESC
)

// orderClauses maps sort directives onto fixed ORDER BY chains. Sort input
// never reaches the query text directly.
var orderClauses = map[string]string{
	SortTitle:     "title ASC",
	SortTitleDesc: "title DESC",
	SortAuthor:    "author ASC, title ASC",
	SortYear:      "published_year DESC, title ASC",
	SortYearAsc:   "published_year ASC, title ASC",
	SortAdded:     "created_date DESC",
}

// SearchRequest describes a catalog search. All predicates are combined with
// AND; malformed numeric values drop the predicate they belong to instead of
// failing the search.
type SearchRequest struct {
	Term     string
	By       SearchField
	Statuses []entities.BookStatus
	YearFrom string
	YearTo   string
	SortBy   string
}

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book. A duplicate ISBN surfaces as ErrConflict.
func (r *Repository) Create(book *entities.Book) error {
	if book.Status == "" {
		book.Status = entities.BookStatusAvailable
	}
	if book.Cover == "" {
		book.Cover = "default.jpg"
	}
	if err := r.db.Create(book).Error; err != nil {
		return database.Classify(err)
	}
	return nil
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &book, nil
}

// Update overwrites every editable field of an existing book, status included.
// A duplicate ISBN on another book surfaces as ErrConflict.
func (r *Repository) Update(book *entities.Book) error {
	var existing entities.Book
	if err := r.db.First(&existing, book.ID).Error; err != nil {
		return database.Classify(err)
	}
	err := r.db.Model(&existing).Select(
		"title", "author", "isbn", "published_year", "genre", "status", "description", "cover",
	).Updates(map[string]any{
		"title":          book.Title,
		"author":         book.Author,
		"isbn":           book.ISBN,
		"published_year": book.PublishedYear,
		"genre":          book.Genre,
		"status":         book.Status,
		"description":    book.Description,
		"cover":          book.Cover,
	}).Error
	if err != nil {
		return database.Classify(err)
	}
	return nil
}

// Delete removes a book permanently.
func (r *Repository) Delete(id uint) error {
	result := r.db.Unscoped().Delete(&entities.Book{}, id)
	if result.Error != nil {
		return database.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// List returns the whole catalog, newest first.
func (r *Repository) List() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id DESC").Find(&books).Error
	return books, err
}

// PopularPicks returns up to limit random books for the landing page.
func (r *Repository) PopularPicks(limit int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("RANDOM()").Limit(limit).Find(&books).Error
	return books, err
}

// Search runs the composed filter/sort query. Every active predicate is ANDed
// and every value is bound as a parameter. A year-field term or range bound
// that does not parse as a non-negative integer is silently skipped.
func (r *Repository) Search(req SearchRequest) ([]entities.Book, error) {
	query := r.db.Model(&entities.Book{})

	term := strings.TrimSpace(req.Term)
	if term != "" {
		pattern := "%" + term + "%"
		switch req.By {
		case SearchByTitle:
			query = query.Where("title LIKE ?", pattern)
		case SearchByAuthor:
			query = query.Where("author LIKE ?", pattern)
		case SearchByGenre:
			query = query.Where("genre LIKE ?", pattern)
		case SearchByISBN:
			query = query.Where("isbn LIKE ?", pattern)
		case SearchByYear:
			if year, ok := parseYear(term); ok {
				query = query.Where("published_year = ?", year)
			}
		}
	}

	if len(req.Statuses) > 0 {
		query = query.Where("status IN ?", req.Statuses)
	}

	if from, ok := parseYear(req.YearFrom); ok {
		query = query.Where("published_year >= ?", from)
	}
	if to, ok := parseYear(req.YearTo); ok {
		query = query.Where("published_year <= ?", to)
	}

	if clause, ok := orderClauses[req.SortBy]; ok {
		query = query.Order(clause)
	}

	var books []entities.Book
	err := query.Find(&books).Error
	return books, err
}

// AvailableCount counts every book currently marked Available, regardless of
// search filters. Used for display statistics only.
func (r *Repository) AvailableCount() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).
		Where("status = ?", entities.BookStatusAvailable).
		Count(&count).Error
	return count, err
}

// parseYear parses s as a non-negative integer year. Returns false for empty
// or malformed input, in which case the predicate is not applied.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 0 {
		return 0, false
	}
	return year, true
}

// QuickList names for the quick-search endpoint.
const (
	QuickAvailable = "available"
	QuickRecent    = "recent"
	QuickFiction   = "fiction"
	QuickPopular   = "popular"
	QuickNew       = "new"
)

// QuickList returns one of the fixed curated book lists. Unknown kinds return
// ErrNotFound so the handler can answer with a 404-style shape.
func (r *Repository) QuickList(kind string, currentYear int) ([]entities.Book, error) {
	var books []entities.Book
	var err error
	switch kind {
	case QuickAvailable:
		err = r.db.Where("status = ?", entities.BookStatusAvailable).
			Order("title ASC").Limit(20).Find(&books).Error
	case QuickRecent:
		err = r.db.Order("created_date DESC").Limit(10).Find(&books).Error
	case QuickFiction:
		err = r.db.Where("genre LIKE ? OR genre LIKE ?", "%Fiction%", "%Novel%").
			Order("title ASC").Limit(20).Find(&books).Error
	case QuickPopular:
		err = r.db.Where("genre IN ?", []string{"Fantasy", "Mystery", "Thriller", "Romance"}).
			Order("RANDOM()").Limit(8).Find(&books).Error
	case QuickNew:
		err = r.db.Where("published_year >= ?", currentYear-5).
			Order("published_year DESC").Limit(10).Find(&books).Error
	default:
		return nil, database.ErrNotFound
	}
	return books, err
}

// CatalogStats aggregates display statistics about the whole catalog.
type CatalogStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Genres    int64 `json:"genres"`
	Authors   int64 `json:"authors"`
	MinYear   int   `json:"min_year"`
	MaxYear   int   `json:"max_year"`
}

// Stats computes catalog-wide aggregates for the stats endpoint.
func (r *Repository) Stats(currentYear int) (*CatalogStats, error) {
	stats := &CatalogStats{}

	if err := r.db.Model(&entities.Book{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Book{}).
		Where("status = ?", entities.BookStatusAvailable).
		Count(&stats.Available).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Book{}).
		Where("genre IS NOT NULL AND genre != ''").
		Distinct("genre").Count(&stats.Genres).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Book{}).
		Distinct("author").Count(&stats.Authors).Error; err != nil {
		return nil, err
	}

	var bounds struct {
		MinYear *int
		MaxYear *int
	}
	err := r.db.Model(&entities.Book{}).
		Select("MIN(published_year) AS min_year, MAX(published_year) AS max_year").
		Where("published_year IS NOT NULL").
		Scan(&bounds).Error
	if err != nil {
		return nil, err
	}
	if bounds.MinYear != nil {
		stats.MinYear = *bounds.MinYear
	}
	if bounds.MaxYear != nil {
		stats.MaxYear = *bounds.MaxYear
	} else {
		stats.MaxYear = currentYear
	}

	return stats, nil
}
