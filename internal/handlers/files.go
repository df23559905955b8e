package handlers

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/middleware"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/dimitrije/collaborate-api/internal/services"
	"github.com/dimitrije/collaborate-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type FileHandler struct {
	fileService FileServiceInterface
	editor      *editor.Materializer
}

func NewFileHandler(fileService FileServiceInterface, materializer *editor.Materializer) *FileHandler {
	return &FileHandler{fileService: fileService, editor: materializer}
}

// UploadDraft stores a file in one of the current user's draft areas. The
// returned URL is the link to embed in editor text.
func (h *FileHandler) UploadDraft(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UploadDraftRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.ItemID < 0 {
		c.BadRequest("invalid item id")
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		c.BadRequest("content must be base64 encoded")
		return
	}

	f, err := h.fileService.UploadDraft(c.Request.Context(), userID, services.DraftUpload{
		ItemID:   req.ItemID,
		FilePath: req.FilePath,
		FileName: req.FileName,
		MimeType: req.MimeType,
		Content:  content,
	})
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidFileName), errors.Is(err, services.ErrFileTooLarge):
		c.BadRequest(err.Error())
		return
	case errors.Is(err, services.ErrDraftNotOwned):
		c.Forbidden("draft area belongs to another user")
		return
	default:
		c.InternalServerError("failed to store file")
		return
	}

	_ = c.JSON(201, dto.DraftFileResponse{
		ItemID:   f.ItemID,
		FilePath: f.FilePath,
		FileName: f.FileName,
		MimeType: f.MimeType,
		Size:     f.Size,
		URL:      h.editor.DraftURLPrefix(f.ItemID) + strings.TrimPrefix(f.FilePath, "/") + url.PathEscape(f.FileName),
	})
}

// DraftFile serves a file from one of the current user's draft areas.
func (h *FileHandler) DraftFile(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	itemID, err := parseID(c.Param("itemId"))
	if err != nil {
		c.BadRequest("invalid item id")
		return
	}

	f, err := h.fileService.GetDraftFile(c.Request.Context(), userID, itemID, c.QueryParam("path"), c.Param("filename"))
	h.serve(c, f, err)
}

// Pluginfile serves a file owned by a record of this component.
func (h *FileHandler) Pluginfile(c *drift.Context) {
	if middleware.GetUserID(c) == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	contextID, err := strconv.ParseInt(c.Param("contextId"), 10, 64)
	if err != nil {
		c.BadRequest("invalid context id")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.BadRequest("invalid item id")
		return
	}
	if c.Param("component") != editor.Component {
		c.NotFound("file not found")
		return
	}

	area := editor.Area{
		ContextID: contextID,
		Component: editor.Component,
		FileArea:  c.Param("area"),
		ItemID:    itemID,
	}
	f, err := h.fileService.GetFile(c.Request.Context(), area, c.QueryParam("path"), c.Param("filename"))
	h.serve(c, f, err)
}

func (h *FileHandler) serve(c *drift.Context, f *models.StoredFile, err error) {
	switch {
	case err == nil:
	case errors.Is(err, services.ErrFileNotFound):
		c.NotFound("file not found")
		return
	case errors.Is(err, services.ErrInvalidFileName):
		c.BadRequest("invalid file path")
		return
	default:
		c.InternalServerError("failed to read file")
		return
	}

	c.Response.Header().Set("Content-Type", f.MimeType)
	c.Response.Header().Set("Content-Length", strconv.FormatInt(int64(len(f.Content)), 10))
	c.Response.Header().Set("X-Content-Type-Options", "nosniff")
	c.Response.WriteHeader(200)
	_, _ = c.Response.Write(f.Content)
	c.Abort()
}
