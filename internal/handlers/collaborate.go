package handlers

import (
	"errors"
	"strconv"

	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/logger"
	"github.com/dimitrije/collaborate-api/internal/middleware"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/dimitrije/collaborate-api/internal/services"
	"github.com/dimitrije/collaborate-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type CollaborateHandler struct {
	collaborateService CollaborateServiceInterface
	localizer          LocalizerInterface
	maxBytes           int64
	log                *logger.Logger
}

func NewCollaborateHandler(
	collaborateService CollaborateServiceInterface,
	localizer LocalizerInterface,
	maxBytes int64,
	log *logger.Logger,
) *CollaborateHandler {
	return &CollaborateHandler{
		collaborateService: collaborateService,
		localizer:          localizer,
		maxBytes:           maxBytes,
		log:                log,
	}
}

func (h *CollaborateHandler) Get(c *drift.Context) {
	if middleware.GetUserID(c) == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inst, ok := h.loadInstance(c)
	if !ok {
		return
	}

	_ = c.JSON(200, collaborateResponse(h.collaborateService.Render(inst)))
}

// Form returns the configuration form of an instance: one editor element per
// rich-text field and the current field values, ready to be edited.
func (h *CollaborateHandler) Form(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inst, ok := h.loadInstance(c)
	if !ok {
		return
	}

	locale := middleware.GetLocale(c)
	fields := editor.NewFieldManager(h.maxBytes, h.localizer.Printer(locale))
	form := editor.NewForm()
	modCtx := editor.ModuleContext(inst.CourseModule)
	for _, name := range editor.FieldNames() {
		if err := fields.RegisterFields(form, modCtx, name); err != nil {
			c.InternalServerError("failed to build form")
			return
		}
	}

	values, err := h.collaborateService.Prepare(c.Request.Context(), userID, inst)
	if err != nil {
		h.log.Error("prepare form failed", "collaborate_id", inst.ID, "error", err)
		c.InternalServerError("failed to prepare form")
		return
	}

	response := dto.FormResponse{
		Locale:   h.localizer.Match(locale).String(),
		Elements: make([]dto.FormElement, 0, len(form.Elements())),
		Values:   make(map[string]dto.EditorContent, len(values)),
	}
	for _, el := range form.Elements() {
		response.Elements = append(response.Elements, dto.FormElement{
			Type:      string(el.Type),
			Name:      el.Name,
			Label:     el.Label,
			ParamType: string(el.ParamType),
			Options:   el.Options,
		})
	}
	for name, v := range values {
		format := v.Format
		response.Values[name] = dto.EditorContent{Text: v.Text, Format: &format, ItemID: v.ItemID}
	}

	_ = c.JSON(200, response)
}

func (h *CollaborateHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.SaveCollaborateRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	inst := &models.Collaborate{
		Course:              req.Course,
		CourseModule:        req.CourseModule,
		Name:                req.Name,
		InstructionsAFormat: models.FormatHTML,
		InstructionsBFormat: models.FormatHTML,
	}

	id, err := h.collaborateService.PersistInstance(c.Request.Context(), userID, inst, editorValues(req), true)
	if err != nil {
		h.writeSaveError(c, err)
		return
	}

	_ = c.JSON(201, dto.IDResponse{ID: id})
}

func (h *CollaborateHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inst, ok := h.loadInstance(c)
	if !ok {
		return
	}

	var req dto.SaveCollaborateRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	if req.CourseModule != 0 && req.CourseModule != inst.CourseModule {
		c.BadRequest("course_module cannot change")
		return
	}

	inst.Course = req.Course
	inst.Name = req.Name

	id, err := h.collaborateService.PersistInstance(c.Request.Context(), userID, inst, editorValues(req), false)
	if err != nil {
		h.writeSaveError(c, err)
		return
	}

	_ = c.JSON(200, dto.IDResponse{ID: id})
}

func (h *CollaborateHandler) loadInstance(c *drift.Context) (*models.Collaborate, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid collaborate id")
		return nil, false
	}

	inst, err := h.collaborateService.GetByID(c.Request.Context(), id)
	if errors.Is(err, services.ErrCollaborateNotFound) {
		c.NotFound("collaborate not found")
		return nil, false
	}
	if err != nil {
		c.InternalServerError("failed to get collaborate")
		return nil, false
	}
	return inst, true
}

func (h *CollaborateHandler) writeSaveError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCollaborateNotFound):
		c.NotFound("collaborate not found")
	case errors.Is(err, editor.ErrInvalidFormat):
		c.BadRequest("invalid text format")
	default:
		h.log.Error("save collaborate failed", "error", err)
		c.InternalServerError("failed to save collaborate")
	}
}

func editorValues(req dto.SaveCollaborateRequest) editor.Values {
	values := editor.Values{}
	if req.InstructionsA != nil {
		values[editor.EditorName("instructionsa")] = editorContent(*req.InstructionsA)
	}
	if req.InstructionsB != nil {
		values[editor.EditorName("instructionsb")] = editorContent(*req.InstructionsB)
	}
	return values
}

func editorContent(in dto.EditorContent) editor.Content {
	format := models.FormatHTML
	if in.Format != nil {
		format = *in.Format
	}
	return editor.Content{Text: in.Text, Format: format, ItemID: in.ItemID}
}

func collaborateResponse(inst *models.Collaborate) dto.CollaborateResponse {
	return dto.CollaborateResponse{
		ID:                  inst.ID,
		Course:              inst.Course,
		CourseModule:        inst.CourseModule,
		Name:                inst.Name,
		InstructionsA:       inst.InstructionsA,
		InstructionsAFormat: inst.InstructionsAFormat,
		InstructionsB:       inst.InstructionsB,
		InstructionsBFormat: inst.InstructionsBFormat,
		TimeCreated:         inst.TimeCreated,
		TimeModified:        inst.TimeModified,
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}
