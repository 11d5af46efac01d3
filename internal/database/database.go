package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jananikaavya/Library-Management/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the sqlite catalog database, runs migrations
// and seeds the starter catalog when the books table is empty.
func NewDatabase(dbPath string) (*Database, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.LibraryCard{},
		&entities.SearchHistory{},
		&entities.Loan{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedBooks(); err != nil {
		return nil, fmt.Errorf("failed to seed books: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedBooks() error {
	var count int64
	if err := d.DB.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := d.DB.Create(starterCatalog()).Error; err != nil {
		return err
	}
	log.Printf("Seeded catalog with %d starter books", len(starterCatalog()))
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func starterCatalog() []entities.Book {
	return []entities.Book{
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: strPtr("9780061120084"), PublishedYear: intPtr(1960), Genre: "Fiction", Status: entities.BookStatusAvailable, Description: "A classic novel about racial injustice in the American South.", Cover: "book2.png"},
		{Title: "1984", Author: "George Orwell", ISBN: strPtr("9780451524935"), PublishedYear: intPtr(1949), Genre: "Dystopian", Status: entities.BookStatusAvailable, Description: "A dystopian social science fiction novel about totalitarian regime.", Cover: "book3.png"},
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: strPtr("9780743273565"), PublishedYear: intPtr(1925), Genre: "Classic", Status: entities.BookStatusCheckedOut, Description: "A story of the fabulously wealthy Jay Gatsby and his love for Daisy Buchanan.", Cover: "book4.png"},
		{Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: strPtr("9780141439518"), PublishedYear: intPtr(1813), Genre: "Romance", Status: entities.BookStatusAvailable, Description: "A romantic novel of manners that depicts the character development of Elizabeth Bennet.", Cover: "book3.png"},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: strPtr("9780547928227"), PublishedYear: intPtr(1937), Genre: "Fantasy", Status: entities.BookStatusAvailable, Description: "A fantasy novel about the adventures of hobbit Bilbo Baggins.", Cover: "book5.png"},
		{Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", ISBN: strPtr("9780747532743"), PublishedYear: intPtr(1997), Genre: "Fantasy", Status: entities.BookStatusAvailable, Description: "The first novel in the Harry Potter series.", Cover: "book6.png"},
		{Title: "The Catcher in the Rye", Author: "J.D. Salinger", ISBN: strPtr("9780316769488"), PublishedYear: intPtr(1951), Genre: "Fiction", Status: entities.BookStatusAvailable, Description: "A story about Holden Caulfield's experiences in New York City.", Cover: "book7.png"},
		{Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", ISBN: strPtr("9780544003415"), PublishedYear: intPtr(1954), Genre: "Fantasy", Status: entities.BookStatusCheckedOut, Description: "An epic high-fantasy novel.", Cover: "book8.png"},
		{Title: "Brave New World", Author: "Aldous Huxley", ISBN: strPtr("9780060850524"), PublishedYear: intPtr(1932), Genre: "Dystopian", Status: entities.BookStatusAvailable, Description: "A dystopian social science fiction novel.", Cover: "book9.png"},
		{Title: "The Da Vinci Code", Author: "Dan Brown", ISBN: strPtr("9780307474278"), PublishedYear: intPtr(2003), Genre: "Mystery", Status: entities.BookStatusAvailable, Description: "A mystery thriller novel.", Cover: "book10.png"},
		{Title: "The Alchemist", Author: "Paulo Coelho", ISBN: strPtr("9780061122415"), PublishedYear: intPtr(1988), Genre: "Fiction", Status: entities.BookStatusReserved, Description: "A philosophical novel.", Cover: "book11.png"},
		{Title: "The Hunger Games", Author: "Suzanne Collins", ISBN: strPtr("9780439023481"), PublishedYear: intPtr(2008), Genre: "Dystopian", Status: entities.BookStatusAvailable, Description: "A dystopian novel.", Cover: "book12.png"},
		{Title: "The Girl on the Train", Author: "Paula Hawkins", ISBN: strPtr("9781594633669"), PublishedYear: intPtr(2015), Genre: "Mystery", Status: entities.BookStatusAvailable, Description: "A psychological thriller novel.", Cover: "book13.png"},
		{Title: "Gone Girl", Author: "Gillian Flynn", ISBN: strPtr("9780307588371"), PublishedYear: intPtr(2012), Genre: "Thriller", Status: entities.BookStatusCheckedOut, Description: "A psychological thriller novel.", Cover: "book14.png"},
		{Title: "Atomic Habits", Author: "James Clear", ISBN: strPtr("9780735211292"), PublishedYear: intPtr(2018), Genre: "Self-Help", Status: entities.BookStatusAvailable, Description: "A guide to building good habits and breaking bad ones.", Cover: "book15.png"},
	}
}
