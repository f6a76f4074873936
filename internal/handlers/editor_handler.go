package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SAP-F-2025/survey-service/internal/middleware"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// EditorEventRequest is one authoring action
type EditorEventRequest struct {
	Kind    string          `json:"kind" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

type EditorHandler struct {
	BaseHandler
	editorService services.EditorService
}

func NewEditorHandler(editorService services.EditorService, logger utils.Logger) *EditorHandler {
	return &EditorHandler{
		BaseHandler:   NewBaseHandler(logger),
		editorService: editorService,
	}
}

// OpenEditor starts an authoring draft on a stored question
// @Summary Open question editor
// @Tags editor
// @Produce json
// @Param id path uint true "Question ID"
// @Success 201 {object} Envelope{data=services.EditorState}
// @Router /questions/{id}/editor [post]
func (h *EditorHandler) OpenEditor(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.open(c, id)
}

// OpenBlankEditor starts an authoring draft for a new question
// @Summary Open blank question editor
// @Tags editor
// @Produce json
// @Success 201 {object} Envelope{data=services.EditorState}
// @Router /questions/editor [post]
func (h *EditorHandler) OpenBlankEditor(c *gin.Context) {
	h.open(c, 0)
}

func (h *EditorHandler) open(c *gin.Context, questionID uint) {
	state, err := h.editorService.Open(c.Request.Context(), questionID, middleware.UserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, state)
}

// DispatchEvent applies one edit to the draft and returns the new view
// @Summary Dispatch editor event
// @Tags editor
// @Accept json
// @Produce json
// @Param draft_id path string true "Draft ID"
// @Param event body EditorEventRequest true "Editor event"
// @Success 200 {object} Envelope{data=services.EditorState}
// @Router /editor/{draft_id}/events [post]
func (h *EditorHandler) DispatchEvent(c *gin.Context) {
	draftID := ParseStringIDParam(c, "draft_id")
	if draftID == "" {
		return
	}

	var req EditorEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	state, err := h.editorService.Dispatch(c.Request.Context(), draftID, req.Kind, req.Payload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, state)
}

// SaveDraft persists the draft into the question store
// @Summary Save editor draft
// @Tags editor
// @Produce json
// @Param draft_id path string true "Draft ID"
// @Success 200 {object} Envelope{data=models.Record}
// @Router /editor/{draft_id}/save [post]
func (h *EditorHandler) SaveDraft(c *gin.Context) {
	draftID := ParseStringIDParam(c, "draft_id")
	if draftID == "" {
		return
	}

	h.LogRequest(c, "Saving editor draft", "draft_id", draftID)

	record, err := h.editorService.Save(c.Request.Context(), draftID, middleware.UserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, record)
}

// DiscardDraft drops the draft
// @Summary Discard editor draft
// @Tags editor
// @Param draft_id path string true "Draft ID"
// @Router /editor/{draft_id} [delete]
func (h *EditorHandler) DiscardDraft(c *gin.Context) {
	draftID := ParseStringIDParam(c, "draft_id")
	if draftID == "" {
		return
	}

	if err := h.editorService.Discard(c.Request.Context(), draftID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "Draft discarded"})
}
