// Package cards implements library card issuance and validity computation.
//
// A card is created lazily on the first card-view access for a user and never
// changes afterwards. Validity is a fixed 730-day window from the issue date.
package cards

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

// cardNumberPrefix starts every generated card number.
const cardNumberPrefix = "LIB"

// issueDateLayout is the calendar-date format stored on cards.
const issueDateLayout = "2006-01-02"

// validityDays is the card validity window: 2 years as straight day
// arithmetic, leap years not specially handled.
const validityDays = 730

// PermanentValidity is the sentinel returned when a card's issue date is
// missing or unreadable. A card that exists is never blocked from display.
const PermanentValidity = "Permanent"

// Repository handles library card database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cards repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the card for a user, or ErrNotFound if none was issued yet.
func (r *Repository) Get(userID uint) (*entities.LibraryCard, error) {
	var card entities.LibraryCard
	if err := r.db.Where("user_id = ?", userID).First(&card).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &card, nil
}

// GetOrIssue returns the user's card, issuing one on first access. Re-running
// for a user who already holds a card is a no-op returning the existing
// record. The user must exist; insert failures (including a concurrent
// first-access losing the uniqueness race) are surfaced, not swallowed.
func (r *Repository) GetOrIssue(userID uint) (*entities.LibraryCard, error) {
	card, err := r.Get(userID)
	if err == nil {
		return card, nil
	}
	if err != database.ErrNotFound {
		return nil, err
	}

	var user entities.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, database.Classify(err)
	}

	now := time.Now()
	card = &entities.LibraryCard{
		UserID:     userID,
		CardNumber: CardNumber(userID, now),
		IssueDate:  now.Format(issueDateLayout),
	}
	if err := r.db.Create(card).Error; err != nil {
		return nil, fmt.Errorf("failed to issue card for user %d: %w", userID, database.Classify(err))
	}
	return card, nil
}

// CardNumber derives the human-readable card identifier from the issuance
// time and the user id: prefix + yymmdd + zero-padded user id.
func CardNumber(userID uint, issuedAt time.Time) string {
	return fmt.Sprintf("%s%s%04d", cardNumberPrefix, issuedAt.Format("060102"), userID)
}

// ValidUntil computes the end of the card's validity window. A missing or
// malformed issue date resolves to the permanent sentinel rather than an
// error.
func ValidUntil(card *entities.LibraryCard) string {
	if card == nil || card.IssueDate == "" {
		return PermanentValidity
	}
	issued, err := time.Parse(issueDateLayout, card.IssueDate)
	if err != nil {
		return PermanentValidity
	}
	return issued.AddDate(0, 0, validityDays).Format(issueDateLayout)
}

// Statistics aggregates the display numbers shown on a member's card.
type Statistics struct {
	BooksBorrowed int64   `json:"books_borrowed"`
	FinesDue      float64 `json:"fines_due"`
	CardNumber    string  `json:"card_number"`
	IssueDate     string  `json:"issue_date"`
	ValidUntil    string  `json:"valid_until"`
}

// Stats gathers card statistics for a user. Each sub-aggregate is best-effort:
// a failing query logs and leaves its zero/placeholder value instead of
// failing the whole response.
func (r *Repository) Stats(userID uint) Statistics {
	stats := Statistics{
		CardNumber: "Not Issued",
		IssueDate:  "N/A",
		ValidUntil: "N/A",
	}

	var borrowed int64
	err := r.db.Model(&entities.Loan{}).
		Where("user_id = ? AND returned_date IS NULL", userID).
		Count(&borrowed).Error
	if err != nil {
		log.Printf("card stats: open loan count failed for user %d: %v", userID, err)
	} else {
		stats.BooksBorrowed = borrowed
	}

	var fines *float64
	err = r.db.Model(&entities.Loan{}).
		Select("SUM(fine_amount)").
		Where("user_id = ? AND fine_amount > 0", userID).
		Scan(&fines).Error
	if err != nil {
		log.Printf("card stats: fine sum failed for user %d: %v", userID, err)
	} else if fines != nil {
		stats.FinesDue = *fines
	}

	if card, err := r.Get(userID); err == nil {
		stats.CardNumber = card.CardNumber
		stats.IssueDate = card.IssueDate
		stats.ValidUntil = ValidUntil(card)
	}

	return stats
}
