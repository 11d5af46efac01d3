package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controller handles the register/login/logout endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
}

// NewController creates a new authentication controller.
func NewController(service *Service, sessionManager *SessionManager) *Controller {
	return &Controller{service: service, sessionManager: sessionManager}
}

// RegisterRoutes registers authentication routes on the router.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.POST("/logout", ctrl.Logout)
	router.GET("/logout", ctrl.Logout) // simple logout links
}

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Email    string `json:"email" form:"email"`
}

// Register creates a new account. Duplicate usernames answer 409.
func (ctrl *Controller) Register(c *gin.Context) {
	if GetUserID(c) != AnonymousUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "already logged in"})
		return
	}

	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ctrl.service.Register(req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists."})
		case errors.Is(err, ErrUsernameRequired), errors.Is(err, ErrPasswordRequired),
			errors.Is(err, ErrUsernameInvalid), errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("register failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registration successful. Please login.",
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// Login verifies credentials and opens a session.
func (ctrl *Controller) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ctrl.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
			return
		}
		log.Printf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if err := ctrl.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("session create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged in successfully!",
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// Logout destroys the session.
func (ctrl *Controller) Logout(c *gin.Context) {
	if err := ctrl.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("session destroy failed: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out."})
}
