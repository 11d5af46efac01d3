// Package loans implements the borrow/return flow that backs card statistics.
package loans

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

// LoanPeriodDays is how long a borrowed book may be kept before fines accrue.
const LoanPeriodDays = 14

// FinePerDay is charged for every full day a return is overdue.
const FinePerDay = 0.50

// ErrBookUnavailable is returned when borrowing a book that is not Available.
var ErrBookUnavailable = errors.New("book is not available for borrowing")

// ErrLoanClosed is returned when returning a loan that was already closed.
var ErrLoanClosed = errors.New("loan is already returned")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Borrow opens a loan for a user on an Available book and marks the book
// Checked Out. The two writes share a transaction so a failure leaves no
// partial state.
func (r *Repository) Borrow(userID, bookID uint) (*entities.Loan, error) {
	var loan *entities.Loan
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			return database.Classify(err)
		}
		if book.Status != entities.BookStatusAvailable {
			return ErrBookUnavailable
		}

		var user entities.User
		if err := tx.First(&user, userID).Error; err != nil {
			return database.Classify(err)
		}

		now := time.Now()
		loan = &entities.Loan{
			UserID:       userID,
			BookID:       bookID,
			BorrowedDate: now,
			DueDate:      now.AddDate(0, 0, LoanPeriodDays),
		}
		if err := tx.Create(loan).Error; err != nil {
			return database.Classify(err)
		}

		return tx.Model(&book).Update("status", entities.BookStatusCheckedOut).Error
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Return closes a loan, charges the overdue fine if any and frees the book.
func (r *Repository) Return(loanID uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&loan, loanID).Error; err != nil {
			return database.Classify(err)
		}
		if loan.ReturnedDate != nil {
			return ErrLoanClosed
		}

		now := time.Now()
		loan.ReturnedDate = &now
		loan.FineAmount = OverdueFine(loan.DueDate, now)
		if err := tx.Save(&loan).Error; err != nil {
			return database.Classify(err)
		}

		return tx.Model(&entities.Book{}).
			Where("id = ?", loan.BookID).
			Update("status", entities.BookStatusAvailable).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// OpenLoans lists a user's unreturned loans.
func (r *Repository) OpenLoans(userID uint) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("user_id = ? AND returned_date IS NULL", userID).
		Order("due_date ASC").
		Find(&loans).Error
	return loans, err
}

// OverdueFine computes the fine owed when a book due at due is returned at
// returned. Full days only; early and on-time returns owe nothing.
func OverdueFine(due, returned time.Time) float64 {
	if !returned.After(due) {
		return 0
	}
	days := math.Floor(returned.Sub(due).Hours() / 24)
	return days * FinePerDay
}
