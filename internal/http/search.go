package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jananikaavya/Library-Management/internal/auth"
	"github.com/Jananikaavya/Library-Management/internal/database/books"
	"github.com/Jananikaavya/Library-Management/internal/database/history"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

type SearchController struct {
	books   *books.Repository
	history *history.Repository
}

func NewSearchController(booksRepo *books.Repository, historyRepo *history.Repository) *SearchController {
	return &SearchController{books: booksRepo, history: historyRepo}
}

// searchParams is the filter/sort request shape, accepted both as query
// string (GET) and form body (POST).
type searchParams struct {
	SearchTerm string   `json:"search_term" form:"search_term"`
	SearchBy   string   `json:"search_by" form:"search_by"`
	SortBy     string   `json:"sort_by" form:"sort_by"`
	Status     []string `json:"status" form:"status[]"`
	YearFrom   string   `json:"year_from" form:"year_from"`
	YearTo     string   `json:"year_to" form:"year_to"`
}

func (p *searchParams) toRequest() books.SearchRequest {
	by := books.SearchField(p.SearchBy)
	if by == "" {
		by = books.SearchByTitle
	}

	statuses := make([]entities.BookStatus, 0, len(p.Status))
	for _, s := range p.Status {
		status := entities.BookStatus(s)
		if entities.ValidBookStatus(status) {
			statuses = append(statuses, status)
		}
	}

	return books.SearchRequest{
		Term:     strings.TrimSpace(p.SearchTerm),
		By:       by,
		Statuses: statuses,
		YearFrom: p.YearFrom,
		YearTo:   p.YearTo,
		SortBy:   p.SortBy,
	}
}

// Search runs a catalog search. Malformed numeric filters are dropped rather
// than rejected, so this endpoint never answers 4xx for filter values. When a
// logged-in user searches with a non-empty term the search lands in their
// history; history problems never degrade the response.
func (ctrl *SearchController) Search(c *gin.Context) {
	var params searchParams
	_ = c.ShouldBind(&params)

	req := params.toRequest()

	userID := auth.GetUserID(c)
	if userID != auth.AnonymousUserID && req.Term != "" {
		ctrl.history.Record(userID, req.Term, string(req.By))
	}

	results, err := ctrl.books.Search(req)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	availableCount, err := ctrl.books.AvailableCount()
	if err != nil {
		respondInternalError(c, err)
		return
	}

	var recent []entities.SearchHistory
	if userID != auth.AnonymousUserID {
		recent = ctrl.history.Recent(userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"books":           results,
		"count":           len(results),
		"available_count": availableCount,
		"search_term":     req.Term,
		"search_by":       string(req.By),
		"sort_by":         req.SortBy,
		"search_history":  recent,
	})
}
