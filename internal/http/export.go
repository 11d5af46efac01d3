package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jananikaavya/Library-Management/internal/database/books"
	"github.com/Jananikaavya/Library-Management/internal/exporters"
)

type ExportController struct {
	books *books.Repository
}

func NewExportController(repo *books.Repository) *ExportController {
	return &ExportController{books: repo}
}

// SearchResults exports the matching rows as a CSV attachment. It accepts the
// same filter parameters as the search endpoint, so the export is a stateless
// re-run of the search rather than a replay of ambient session state.
func (ctrl *ExportController) SearchResults(c *gin.Context) {
	var params searchParams
	_ = c.ShouldBind(&params)

	req := params.toRequest()
	if req.SortBy == "" {
		req.SortBy = books.SortTitle
	}

	results, err := ctrl.books.Search(req)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := exporters.WriteBooksCSV(&buf, results); err != nil {
		respondInternalError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=search_results.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
