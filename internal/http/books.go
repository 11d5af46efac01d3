package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/database/books"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

// popularPickCount is how many random books the landing page shows.
const popularPickCount = 6

type BooksController struct {
	books *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{books: repo}
}

// bookRequest is the payload for adding or editing a book.
type bookRequest struct {
	Title         string `json:"title" form:"title" binding:"required"`
	Author        string `json:"author" form:"author" binding:"required"`
	ISBN          string `json:"isbn" form:"isbn"`
	PublishedYear *int   `json:"published_year" form:"published_year"`
	Genre         string `json:"genre" form:"genre"`
	Status        string `json:"status" form:"status"`
	Description   string `json:"description" form:"description"`
	Cover         string `json:"cover" form:"cover"`
}

func (req *bookRequest) toBook() (*entities.Book, error) {
	book := &entities.Book{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		Description:   req.Description,
		Cover:         req.Cover,
	}
	if req.ISBN != "" {
		isbn := req.ISBN
		book.ISBN = &isbn
	}
	if req.Status != "" {
		status := entities.BookStatus(req.Status)
		if !entities.ValidBookStatus(status) {
			return nil, errors.New("unknown status: " + req.Status)
		}
		book.Status = status
	}
	return book, nil
}

// Index returns random popular picks for the landing page.
func (ctrl *BooksController) Index(c *gin.Context) {
	picks, err := ctrl.books.PopularPicks(popularPickCount)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"popular_books": picks})
}

// List returns the whole catalog, newest first.
func (ctrl *BooksController) List(c *gin.Context) {
	all, err := ctrl.books.List()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": all, "count": len(all)})
}

// Create adds a book to the catalog.
func (ctrl *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "title and author are required")
		return
	}

	book, err := req.toBook()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := ctrl.books.Create(book); err != nil {
		if errors.Is(err, database.ErrConflict) {
			respondConflict(c, "ISBN already exists.")
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Book added successfully!", "book": book})
}

// Get returns a single book's details.
func (ctrl *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := ctrl.books.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update edits every field of an existing book, status included.
func (ctrl *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "title and author are required")
		return
	}

	book, err := req.toBook()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	book.ID = id

	if err := ctrl.books.Update(book); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, database.ErrConflict):
			respondConflict(c, "ISBN already exists for another book.")
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book updated."})
}

// Delete removes a book permanently.
func (ctrl *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.books.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted."})
}

// QuickSearch serves the fixed curated lists.
func (ctrl *BooksController) QuickSearch(c *gin.Context) {
	kind := c.Param("type")

	results, err := ctrl.books.QuickList(kind, time.Now().Year())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondBadRequest(c, "invalid search type")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// SearchStats returns catalog-wide aggregates.
func (ctrl *BooksController) SearchStats(c *gin.Context) {
	stats, err := ctrl.books.Stats(time.Now().Year())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
