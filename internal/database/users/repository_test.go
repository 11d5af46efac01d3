package users

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
	dbPath := "./test_users_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_Create(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := &entities.User{Username: "reader", PasswordHash: "hash", Email: "reader@example.com"}
	require.NoError(t, repo.Create(user))

	assert.NotZero(t, user.ID)
}

func TestRepository_Create_DuplicateUsername(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.User{Username: "reader", PasswordHash: "hash"}))

	err := repo.Create(&entities.User{Username: "reader", PasswordHash: "other"})

	assert.ErrorIs(t, err, database.ErrConflict)
}

func TestRepository_GetByUsername(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created := &entities.User{Username: "reader", PasswordHash: "hash"}
	require.NoError(t, repo.Create(created))

	user, err := repo.GetByUsername("reader")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_GetByUsername_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByUsername("nobody")

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(999)

	assert.ErrorIs(t, err, database.ErrNotFound)
}
