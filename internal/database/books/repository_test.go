package books

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func addBook(t *testing.T, repo *Repository, title, author, isbn string, year int, genre string, status entities.BookStatus) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:  title,
		Author: author,
		Genre:  genre,
		Status: status,
	}
	if isbn != "" {
		book.ISBN = &isbn
	}
	if year != 0 {
		book.PublishedYear = &year
	}
	require.NoError(t, repo.Create(book))
	return book
}

func titles(books []entities.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func seedSearchFixtures(t *testing.T, repo *Repository) {
	addBook(t, repo, "The Hobbit", "J.R.R. Tolkien", "111", 1937, "Fantasy", entities.BookStatusAvailable)
	addBook(t, repo, "The Silmarillion", "J.R.R. Tolkien", "222", 1977, "Fantasy", entities.BookStatusCheckedOut)
	addBook(t, repo, "1984", "George Orwell", "333", 1949, "Dystopian", entities.BookStatusAvailable)
	addBook(t, repo, "Animal Farm", "George Orwell", "444", 1945, "Fiction", entities.BookStatusReserved)
	addBook(t, repo, "Dune", "Frank Herbert", "555", 1965, "Science Fiction", entities.BookStatusAvailable)
}

func TestRepository_Search_TitleSubstring(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{Term: "the", By: SearchByTitle, SortBy: SortTitle})

	require.NoError(t, err)
	assert.Equal(t, []string{"The Hobbit", "The Silmarillion"}, titles(results))
}

func TestRepository_Search_TermTrimmed(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{Term: "  hobbit  ", By: SearchByTitle})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The Hobbit", results[0].Title)
}

func TestRepository_Search_EmptyTermReturnsAll(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{Term: "   ", By: SearchByTitle})

	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestRepository_Search_StatusFilter(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{
		Statuses: []entities.BookStatus{entities.BookStatusCheckedOut, entities.BookStatusReserved},
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, b := range results {
		assert.Contains(t, []entities.BookStatus{entities.BookStatusCheckedOut, entities.BookStatusReserved}, b.Status)
	}
}

func TestRepository_Search_EmptyStatusSetHasNoEffect(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{Statuses: nil})

	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestRepository_Search_YearRange(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{YearFrom: "1945", YearTo: "1965", SortBy: SortYearAsc})

	require.NoError(t, err)
	assert.Equal(t, []string{"Animal Farm", "1984", "Dune"}, titles(results))
}

func TestRepository_Search_InvertedYearRangeIsEmptyNotError(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{YearFrom: "1980", YearTo: "1950"})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRepository_Search_MalformedYearBoundsSkipped(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{YearFrom: "not-a-year", YearTo: "-3"})

	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestRepository_Search_YearFieldTerm(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{Term: "1949", By: SearchByYear})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1984", results[0].Title)

	// Non-numeric term against the year field drops the predicate entirely.
	results, err = repo.Search(SearchRequest{Term: "nineteen", By: SearchByYear})
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestRepository_Search_CombinedPredicates(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{
		Term:     "the",
		By:       SearchByTitle,
		Statuses: []entities.BookStatus{entities.BookStatusAvailable},
		YearFrom: "1900",
		YearTo:   "1950",
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The Hobbit", results[0].Title)
}

func TestRepository_Search_AuthorSortTieBreak(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{SortBy: SortAuthor})

	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "1984", "Animal Farm", "The Hobbit", "The Silmarillion"}, titles(results))
}

func TestRepository_Search_YearDescSort(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{SortBy: SortYear})

	require.NoError(t, err)
	assert.Equal(t, []string{"The Silmarillion", "Dune", "1984", "Animal Farm", "The Hobbit"}, titles(results))
}

func TestRepository_Search_UnknownSortDoesNotFail(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	results, err := repo.Search(SearchRequest{SortBy: "title; DROP TABLE books"})

	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestRepository_Search_EmptyStore(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	results, err := repo.Search(SearchRequest{})
	require.NoError(t, err)
	assert.Empty(t, results)

	count, err := repo.AvailableCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_AvailableCount_IgnoresFilters(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	count, err := repo.AvailableCount()

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRepository_Create_DuplicateISBN(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	addBook(t, repo, "First", "Author", "111", 2000, "", entities.BookStatusAvailable)

	dup := "111"
	err := repo.Create(&entities.Book{Title: "Second", Author: "Author", ISBN: &dup})

	require.ErrorIs(t, err, database.ErrConflict)

	results, listErr := repo.Search(SearchRequest{Term: "111", By: SearchByISBN})
	require.NoError(t, listErr)
	assert.Len(t, results, 1)
	assert.Equal(t, "First", results[0].Title)
}

func TestRepository_Create_NilISBNsDoNotConflict(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Book{Title: "One", Author: "A"}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Two", Author: "B"}))
}

func TestRepository_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := addBook(t, repo, "Old Title", "Author", "111", 2000, "Fiction", entities.BookStatusAvailable)

	book.Title = "New Title"
	book.Status = entities.BookStatusCheckedOut
	require.NoError(t, repo.Update(book))

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, entities.BookStatusCheckedOut, got.Status)
}

func TestRepository_Update_DuplicateISBN(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	addBook(t, repo, "First", "Author", "111", 2000, "", entities.BookStatusAvailable)
	second := addBook(t, repo, "Second", "Author", "222", 2001, "", entities.BookStatusAvailable)

	dup := "111"
	second.ISBN = &dup
	err := repo.Update(second)

	assert.ErrorIs(t, err, database.ErrConflict)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(&entities.Book{ID: 999, Title: "Ghost"})

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := addBook(t, repo, "Doomed", "Author", "", 0, "", entities.BookStatusAvailable)

	require.NoError(t, repo.Delete(book.ID))

	_, err := repo.GetByID(book.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete(999)

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_QuickList(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	available, err := repo.QuickList(QuickAvailable, 2026)
	require.NoError(t, err)
	assert.Len(t, available, 3)
	for _, b := range available {
		assert.Equal(t, entities.BookStatusAvailable, b.Status)
	}

	_, err = repo.QuickList("bogus", 2026)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Stats(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	seedSearchFixtures(t, repo)

	stats, err := repo.Stats(2026)

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(3), stats.Available)
	assert.Equal(t, int64(4), stats.Genres)
	assert.Equal(t, int64(3), stats.Authors)
	assert.Equal(t, 1937, stats.MinYear)
	assert.Equal(t, 1977, stats.MaxYear)
}
