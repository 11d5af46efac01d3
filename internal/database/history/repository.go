// Package history keeps the append-only search history log. Appends and reads
// are best-effort: the log must never fail or degrade a search response.
package history

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Jananikaavya/Library-Management/internal/entities"
)

// RecentLimit caps how many history entries the search view shows.
const RecentLimit = 5

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record appends a search to the user's history. Failures (for example a
// referential constraint violation) are logged and dropped.
func (r *Repository) Record(userID uint, term, by string) {
	entry := &entities.SearchHistory{
		UserID:     userID,
		SearchTerm: term,
		SearchBy:   by,
		SearchDate: time.Now(),
	}
	if err := r.db.Create(entry).Error; err != nil {
		log.Printf("search history: append failed for user %d: %v", userID, err)
	}
}

// Recent returns the user's latest searches, newest first, capped at
// RecentLimit. A failing read yields an empty list.
func (r *Repository) Recent(userID uint) []entities.SearchHistory {
	var entries []entities.SearchHistory
	err := r.db.Where("user_id = ?", userID).
		Order("search_date DESC").
		Limit(RecentLimit).
		Find(&entries).Error
	if err != nil {
		log.Printf("search history: read failed for user %d: %v", userID, err)
		return nil
	}
	return entries
}
