package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jananikaavya/Library-Management/internal/auth"
	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/database/loans"
)

type LoansController struct {
	loans *loans.Repository
}

func NewLoansController(repo *loans.Repository) *LoansController {
	return &LoansController{loans: repo}
}

type borrowRequest struct {
	BookID uint `json:"book_id" form:"book_id" binding:"required"`
}

// Borrow opens a loan on an available book for the acting user.
func (ctrl *LoansController) Borrow(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "book_id is required")
		return
	}

	loan, err := ctrl.loans.Borrow(auth.GetUserID(c), req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, loans.ErrBookUnavailable):
			respondConflict(c, "book is not available for borrowing")
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Book borrowed.", "loan": loan})
}

// Return closes a loan and reports any overdue fine.
func (ctrl *LoansController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loan, err := ctrl.loans.Return(id)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondNotFound(c, "loan")
		case errors.Is(err, loans.ErrLoanClosed):
			respondConflict(c, "loan is already returned")
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book returned.", "loan": loan})
}

// ListOpen shows the acting user's unreturned loans.
func (ctrl *LoansController) ListOpen(c *gin.Context) {
	open, err := ctrl.loans.OpenLoans(auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": open, "count": len(open)})
}
