package handlers

import (
	"net/http"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// TrainingHandler handles training and trying out a bot's retrieval model.
type TrainingHandler struct {
	trainingService TrainingServiceInterface
}

// NewTrainingHandler creates a new TrainingHandler
func NewTrainingHandler(trainingService TrainingServiceInterface) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// TrainBot handles POST /train_bot
func (h *TrainingHandler) TrainBot(w http.ResponseWriter, r *http.Request) {
	var req models.TrainBotRequest
	if err := utils.BindAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	summary, err := h.trainingService.TrainBot(r.Context(), req.BotID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

// TestBot handles POST /test_bot
func (h *TrainingHandler) TestBot(w http.ResponseWriter, r *http.Request) {
	var req models.TestBotRequest
	if err := utils.BindAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	resp, err := h.trainingService.TestBot(r.Context(), req.BotID, req.Message)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}
