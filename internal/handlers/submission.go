package handlers

import (
	"errors"
	"strings"

	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/logger"
	"github.com/dimitrije/collaborate-api/internal/middleware"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/dimitrije/collaborate-api/internal/services"
	"github.com/dimitrije/collaborate-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type SubmissionHandler struct {
	collaborateService CollaborateServiceInterface
	submissionService  SubmissionServiceInterface
	localizer          LocalizerInterface
	log                *logger.Logger
}

func NewSubmissionHandler(
	collaborateService CollaborateServiceInterface,
	submissionService SubmissionServiceInterface,
	localizer LocalizerInterface,
	log *logger.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		collaborateService: collaborateService,
		submissionService:  submissionService,
		localizer:          localizer,
		log:                log,
	}
}

// Get returns the current user's submission for a page.
func (h *SubmissionHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inst, page, ok := h.resolve(c)
	if !ok {
		return
	}

	sub, err := h.submissionService.FindSubmission(c.Request.Context(), inst.ID, userID, page)
	if err != nil {
		c.InternalServerError("failed to get submission")
		return
	}
	if sub == nil {
		c.NotFound("submission not found")
		return
	}

	_ = c.JSON(200, submissionResponse(h.submissionService.Render(editor.ModuleContext(inst.CourseModule), sub)))
}

// Edit returns the current user's submission for a page as an editor value
// backed by a fresh draft area. Clients send that value back to Save, so files
// already attached to the submission survive the re-save.
func (h *SubmissionHandler) Edit(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inst, page, ok := h.resolve(c)
	if !ok {
		return
	}

	sub, err := h.submissionService.FindSubmission(c.Request.Context(), inst.ID, userID, page)
	if err != nil {
		c.InternalServerError("failed to get submission")
		return
	}

	content, err := h.submissionService.Prepare(c.Request.Context(), userID, editor.ModuleContext(inst.CourseModule), sub)
	if err != nil {
		h.log.Error("prepare submission failed", "collaborate_id", inst.ID, "page", string(page), "error", err)
		c.InternalServerError("failed to prepare submission")
		return
	}

	printer := h.localizer.Printer(middleware.GetLocale(c))
	format := content.Format
	response := dto.SubmissionEditResponse{
		Page:       page,
		Title:      printer.Sprintf("pagetitle", strings.ToUpper(string(page))),
		Label:      printer.Sprintf("submission"),
		Submission: dto.EditorContent{Text: content.Text, Format: &format, ItemID: content.ItemID},
	}
	if sub != nil {
		response.ID = sub.ID
	}

	_ = c.JSON(200, response)
}

// Save creates or replaces the current user's submission for a page.
func (h *SubmissionHandler) Save(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inst, page, ok := h.resolve(c)
	if !ok {
		return
	}

	var req dto.SaveSubmissionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	id, err := h.submissionService.SaveSubmission(
		c.Request.Context(), userID, editor.ModuleContext(inst.CourseModule),
		inst.ID, page, editorContent(req.Submission),
	)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrCollaborateNotFound):
		c.NotFound("collaborate not found")
		return
	case errors.Is(err, services.ErrInvalidPage), errors.Is(err, editor.ErrInvalidFormat):
		c.BadRequest(err.Error())
		return
	default:
		h.log.Error("save submission failed", "collaborate_id", inst.ID, "page", string(page), "error", err)
		c.InternalServerError("failed to save submission")
		return
	}

	_ = c.JSON(200, dto.IDResponse{ID: id})
}

func (h *SubmissionHandler) resolve(c *drift.Context) (*models.Collaborate, models.Page, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid collaborate id")
		return nil, "", false
	}
	page := models.Page(c.Param("page"))
	if !page.Valid() {
		c.BadRequest("invalid page")
		return nil, "", false
	}

	inst, err := h.collaborateService.GetByID(c.Request.Context(), id)
	if errors.Is(err, services.ErrCollaborateNotFound) {
		c.NotFound("collaborate not found")
		return nil, "", false
	}
	if err != nil {
		c.InternalServerError("failed to get collaborate")
		return nil, "", false
	}
	return inst, page, true
}

func submissionResponse(sub *models.Submission) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		ID:               sub.ID,
		CollaborateID:    sub.CollaborateID,
		UserID:           sub.UserID,
		Page:             sub.Page,
		Submission:       sub.Submission,
		SubmissionFormat: sub.SubmissionFormat,
		TimeCreated:      sub.TimeCreated,
		TimeModified:     sub.TimeModified,
	}
}
