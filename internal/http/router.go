package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Jananikaavya/Library-Management/internal/auth"
	"github.com/Jananikaavya/Library-Management/internal/database/books"
	"github.com/Jananikaavya/Library-Management/internal/database/cards"
	"github.com/Jananikaavya/Library-Management/internal/database/history"
	"github.com/Jananikaavya/Library-Management/internal/database/loans"
	"github.com/Jananikaavya/Library-Management/internal/database/users"
)

// RouterConfig carries every dependency the router wires together.
type RouterConfig struct {
	Books   *books.Repository
	Users   *users.Repository
	Cards   *cards.Repository
	Loans   *loans.Repository
	History *history.Repository

	AuthService    *auth.Service
	SessionManager *auth.SessionManager

	// CSRFSecret enables CSRF protection when non-empty.
	CSRFSecret    []byte
	SecureCookies bool
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF runs before session loading so the session context is layered on
	// top of the request CSRF replaces.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(auth.CurrentUserMiddleware(cfg.SessionManager))

	booksCtrl := NewBooksController(cfg.Books)
	searchCtrl := NewSearchController(cfg.Books, cfg.History)
	cardsCtrl := NewCardsController(cfg.Cards, cfg.Users)
	loansCtrl := NewLoansController(cfg.Loans)
	exportCtrl := NewExportController(cfg.Books)

	authCtrl := auth.NewController(cfg.AuthService, cfg.SessionManager)
	authCtrl.RegisterRoutes(router)

	// Public catalog surface
	router.GET("/health", Health)
	router.GET("/", booksCtrl.Index)
	router.GET("/books", booksCtrl.List)
	router.GET("/books/:id", booksCtrl.Get)
	router.GET("/search", searchCtrl.Search)
	router.POST("/search", searchCtrl.Search)
	router.GET("/api/quick_search/:type", booksCtrl.QuickSearch)
	router.GET("/api/search_stats", booksCtrl.SearchStats)

	// Everything below needs a session
	protected := router.Group("/", auth.RequireLogin())
	protected.POST("/books", booksCtrl.Create)
	protected.PUT("/books/:id", booksCtrl.Update)
	protected.DELETE("/books/:id", booksCtrl.Delete)
	protected.GET("/api/book/:id", booksCtrl.Get)
	protected.GET("/export/search_results", exportCtrl.SearchResults)

	protected.GET("/library_card", cardsCtrl.LibraryCard)
	protected.GET("/card_stats/:user_id", cardsCtrl.CardStats)
	protected.GET("/generate_qr/:user_id", cardsCtrl.GenerateQR)
	protected.GET("/download_card_pass/:user_id", cardsCtrl.DownloadPass)

	protected.GET("/loans", loansCtrl.ListOpen)
	protected.POST("/loans", loansCtrl.Borrow)
	protected.POST("/loans/:id/return", loansCtrl.Return)

	return router
}
