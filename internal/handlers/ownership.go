package handlers

import (
	"net/http"
	"strings"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/auth"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// requestOwner returns the authenticated username. A supplied username naming
// anyone else is forbidden.
func requestOwner(r *http.Request, supplied string) (string, error) {
	username, ok := auth.GetUsername(r)
	if !ok || username == "" {
		return "", utils.NewUnauthorizedError("")
	}

	supplied = strings.TrimSpace(supplied)
	if supplied != "" && supplied != username {
		return "", utils.NewForbiddenError("")
	}
	return username, nil
}
