package models

import (
	"time"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// Bot is a named chatbot project owned by a user. Each bot has one dataset.
type Bot struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	OwnerUsername string    `json:"owner_username" db:"owner_username"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NewBot creates a bot owned by owner.
func NewBot(name, owner string) *Bot {
	return &Bot{
		Name:          name,
		OwnerUsername: owner,
		CreatedAt:     time.Now(),
	}
}

// TableName returns the database table name for the Bot model.
func (b *Bot) TableName() string {
	return constants.TableBots
}

// BotSummary is the list view of a bot.
type BotSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateBotRequest holds the non-file fields of a bot upload. Username is
// optional and, when present, must match the authenticated user.
type CreateBotRequest struct {
	Name     string `json:"name" form:"name" validate:"required,notblank,max=100"`
	Username string `json:"username" form:"username"`
}

// CreateBotResponse is returned after a bot and its dataset are stored.
type CreateBotResponse struct {
	Message string `json:"message"`
	BotID   int64  `json:"bot_id"`
}
