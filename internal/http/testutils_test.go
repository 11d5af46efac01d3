package http

import (
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jananikaavya/Library-Management/internal/auth"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.LibraryCard{},
		&entities.SearchHistory{},
		&entities.Loan{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

// actAs injects a logged-in user into the request context, standing in for
// the session middleware.
func actAs(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, userID)
		c.Next()
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}
