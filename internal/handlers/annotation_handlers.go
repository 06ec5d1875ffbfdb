package handlers

import (
	"net/http"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

func init() {
	// form posts carry entities as the JSON text of the array
	utils.RegisterFormType(models.DecodeEntityListForm, models.EntityList{})
}

// AnnotationHandler handles sentence annotation and the stored labels.
type AnnotationHandler struct {
	annotationService AnnotationServiceInterface
}

// NewAnnotationHandler creates a new AnnotationHandler
func NewAnnotationHandler(annotationService AnnotationServiceInterface) *AnnotationHandler {
	return &AnnotationHandler{annotationService: annotationService}
}

// Annotate handles POST /annotate
func (h *AnnotationHandler) Annotate(w http.ResponseWriter, r *http.Request) {
	var req models.AnnotateRequest
	if err := utils.BindAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	resp, err := h.annotationService.Annotate(r.Context(), req.Sentence, req.BotID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// SaveAnnotation handles POST /save_annotation
func (h *AnnotationHandler) SaveAnnotation(w http.ResponseWriter, r *http.Request) {
	var req models.SaveAnnotationRequest
	if err := utils.BindAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	annotation, err := h.annotationService.SaveAnnotation(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, models.SaveAnnotationResponse{
		Message:      constants.MsgAnnotationSaved,
		AnnotationID: annotation.ID,
	})
}

// ListAnnotations handles GET /annotations?bot_id=
func (h *AnnotationHandler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	botID, err := utils.ParseID(r.URL.Query().Get(constants.QueryParamBotID), constants.QueryParamBotID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	annotations, err := h.annotationService.ListAnnotations(r.Context(), botID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, annotations)
}
