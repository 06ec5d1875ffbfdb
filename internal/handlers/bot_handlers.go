package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// BotHandler handles bot creation, listing and dataset previews.
type BotHandler struct {
	botService     BotServiceInterface
	maxUploadBytes int64
}

// NewBotHandler creates a new BotHandler. Uploads larger than maxUploadBytes
// are rejected; zero selects the default limit.
func NewBotHandler(botService BotServiceInterface, maxUploadBytes int64) *BotHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = constants.DefaultMaxUploadBytes
	}
	return &BotHandler{
		botService:     botService,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateBot handles POST /create_bot. The body is multipart/form-data with a
// name, the dataset file and an optional username.
func (h *BotHandler) CreateBot(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(constants.MultipartMemoryBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.ErrorFromAppError(w, utils.NewBadRequestError("Uploaded file is too large"))
			return
		}
		utils.ErrorFromAppError(w, utils.NewBadRequestError("Request must be multipart/form-data with a file"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn().Err(err).Msg("Failed to remove multipart temp files")
		}
	}()

	var req models.CreateBotRequest
	if err := utils.DecodeForm(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	owner, err := requestOwner(r, req.Username)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	file, header, err := r.FormFile(constants.FormFieldFile)
	if err != nil {
		utils.ErrorFromAppError(w, utils.NewValidationError(constants.FormFieldFile, "A dataset file is required"))
		return
	}
	defer file.Close()

	botID, err := h.botService.CreateBot(r.Context(), strings.TrimSpace(req.Name), owner, header.Filename, file)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, models.CreateBotResponse{
		Message: constants.MsgBotCreated,
		BotID:   botID,
	})
}

// ListBots handles GET /bots
func (h *BotHandler) ListBots(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r, r.URL.Query().Get(constants.QueryParamUsername))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	bots, err := h.botService.ListBots(r.Context(), owner)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, bots)
}

// PreviewDataset handles GET /dataset_preview/{bot_id}
func (h *BotHandler) PreviewDataset(w http.ResponseWriter, r *http.Request) {
	botID, err := utils.ParseID(chi.URLParam(r, constants.ParamBotID), constants.ParamBotID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	records, err := h.botService.PreviewDataset(r.Context(), botID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, records)
}
