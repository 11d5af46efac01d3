// Package auth provides registration, login and session handling for the
// library catalog.
//
// Passwords are stored as bcrypt hashes. Sessions are server-side, stored in
// the catalog's sqlite database via alexedwards/scs, with the session cookie
// carrying only the opaque token. Mutating catalog routes and everything under
// the card views require an authenticated session.
//
// # Usage
//
//	service := auth.NewService(userRepo, cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sessions.SessionLoadSave())
//	router.Use(auth.CurrentUserMiddleware(sessions))
//
//	protected := router.Group("/", auth.RequireLogin())
//
// Handlers read the acting user with auth.GetUserID(c); zero means anonymous.
package auth
