package entities

import (
	"time"
)

type BookStatus string

const (
	BookStatusAvailable  BookStatus = "Available"
	BookStatusCheckedOut BookStatus = "Checked Out"
	BookStatusReserved   BookStatus = "Reserved"
)

// ValidBookStatus reports whether s is part of the fixed status vocabulary.
func ValidBookStatus(s BookStatus) bool {
	switch s {
	case BookStatusAvailable, BookStatusCheckedOut, BookStatusReserved:
		return true
	}
	return false
}

type Book struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"index;size:512;not null" json:"title"`
	Author        string     `gorm:"index;size:256;not null" json:"author"`
	ISBN          *string    `gorm:"uniqueIndex;size:20" json:"isbn,omitempty"`
	PublishedYear *int       `json:"published_year,omitempty"`
	Genre         string     `gorm:"index;size:100" json:"genre,omitempty"`
	Status        BookStatus `gorm:"size:20;default:'Available'" json:"status"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	Cover         string     `gorm:"size:256;default:'default.jpg'" json:"cover"`
	CreatedDate   time.Time  `gorm:"autoCreateTime" json:"created_date"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// LibraryCard is issued lazily on first card access. UserID carries a unique
// index so a racing double-issuance loses at the constraint instead of
// producing two cards.
type LibraryCard struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	CardNumber string `gorm:"uniqueIndex;size:20" json:"card_number"`
	IssueDate  string `gorm:"size:10" json:"issue_date"` // YYYY-MM-DD
	User       User   `gorm:"foreignKey:UserID" json:"-"`
}

// SearchHistory is an append-only log of catalog searches, capped at read time.
type SearchHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	SearchTerm string    `gorm:"size:256" json:"search_term"`
	SearchBy   string    `gorm:"size:20" json:"search_by"`
	SearchDate time.Time `gorm:"autoCreateTime" json:"search_date"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
}

type Loan struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	BookID       uint       `gorm:"index;not null" json:"book_id"`
	BorrowedDate time.Time  `json:"borrowed_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnedDate *time.Time `json:"returned_date,omitempty"`
	FineAmount   float64    `gorm:"default:0" json:"fine_amount"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	Book         Book       `gorm:"foreignKey:BookID" json:"-"`
}
