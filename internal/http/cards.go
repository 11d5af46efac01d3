package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Jananikaavya/Library-Management/internal/auth"
	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/database/cards"
	"github.com/Jananikaavya/Library-Management/internal/database/users"
)

// qrImageSize is the square pixel size of generated card QR codes.
const qrImageSize = 256

type CardsController struct {
	cards *cards.Repository
	users *users.Repository
}

func NewCardsController(cardsRepo *cards.Repository, usersRepo *users.Repository) *CardsController {
	return &CardsController{cards: cardsRepo, users: usersRepo}
}

// LibraryCard returns the acting user's card, issuing one on first access.
func (ctrl *CardsController) LibraryCard(c *gin.Context) {
	userID := auth.GetUserID(c)

	card, err := ctrl.cards.GetOrIssue(userID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondNotFound(c, "user")
		case errors.Is(err, database.ErrConflict):
			respondConflict(c, "card issuance conflicted with a concurrent request")
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"card":        card,
		"valid_until": cards.ValidUntil(card),
	})
}

// CardStats returns the display statistics for a member's card. Every
// sub-aggregate defaults rather than fails.
func (ctrl *CardsController) CardStats(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ctrl.cards.Stats(userID))
}

// cardPayload is the data embedded in the card QR code.
type cardPayload struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	CardNumber string `json:"card_number"`
	IssueDate  string `json:"issue_date"`
	ValidUntil string `json:"valid_until"`
}

func (ctrl *CardsController) loadCardPayload(c *gin.Context) (*cardPayload, bool) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return nil, false
	}

	card, err := ctrl.cards.Get(userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "library card")
		} else {
			respondInternalError(c, err)
		}
		return nil, false
	}

	user, err := ctrl.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "user")
		} else {
			respondInternalError(c, err)
		}
		return nil, false
	}

	return &cardPayload{
		UserID:     userID,
		Username:   user.Username,
		CardNumber: card.CardNumber,
		IssueDate:  card.IssueDate,
		ValidUntil: cards.ValidUntil(card),
	}, true
}

// GenerateQR renders the member's card as a QR code PNG, returned as a base64
// data URL alongside the encoded payload.
func (ctrl *CardsController) GenerateQR(c *gin.Context) {
	payload, ok := ctrl.loadCardPayload(c)
	if !ok {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	png, err := qrcode.Encode(string(data), qrcode.Low, qrImageSize)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qr_code":   "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"card_data": payload,
	})
}

// DownloadPass serves a plain-text membership pass as an attachment.
func (ctrl *CardsController) DownloadPass(c *gin.Context) {
	payload, ok := ctrl.loadCardPayload(c)
	if !ok {
		return
	}

	pass := fmt.Sprintf(`LIBRARY MEMBERSHIP CARD
========================

Card Holder: %s
Card Number: %s
Issue Date: %s
Valid Until: %s
Member ID: LIB%06d

This card is issued by Library Management System.
Present this card for all library services.

Generated on: %s
`,
		payload.Username,
		payload.CardNumber,
		payload.IssueDate,
		payload.ValidUntil,
		payload.UserID,
		time.Now().Format("2006-01-02 15:04:05"),
	)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=library_card_%s.txt", payload.CardNumber))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(pass))
}
